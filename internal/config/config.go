// Package config содержит логику чтения конфигурации сервиса магазина.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса магазина.
type Config struct {
	RunAddress           string  `env:"RUN_ADDRESS"`
	DatabaseURI          string  `env:"DATABASE_URI"`
	PaymentSystemAddress string  `env:"PAYMENT_SYSTEM_ADDRESS"`
	AuthSecret           string  `env:"AUTH_SECRET"`
	AdminEmail           string  `env:"ADMIN_EMAIL"`
	AdminPassword        string  `env:"ADMIN_PASSWORD"`
	DeliveryCharge       float64 `env:"DELIVERY_CHARGE"`
	FreeDeliveryAbove    float64 `env:"FREE_DELIVERY_ABOVE"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envPaymentAddress := cfg.PaymentSystemAddress
	envAuthSecret := cfg.AuthSecret
	envDeliveryCharge := cfg.DeliveryCharge
	envFreeDeliveryAbove := cfg.FreeDeliveryAbove

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.PaymentSystemAddress, "p", "", "payment system address")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret key for auth cookies")
	flag.Float64Var(&cfg.DeliveryCharge, "c", 50, "delivery charge")
	flag.Float64Var(&cfg.FreeDeliveryAbove, "f", 500, "order subtotal for free delivery")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envPaymentAddress != "" {
		cfg.PaymentSystemAddress = envPaymentAddress
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}
	if envDeliveryCharge != 0 {
		cfg.DeliveryCharge = envDeliveryCharge
	}
	if envFreeDeliveryAbove != 0 {
		cfg.FreeDeliveryAbove = envFreeDeliveryAbove
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
