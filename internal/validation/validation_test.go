package validation

import "testing"

func TestIsValidPincode(t *testing.T) {
	tests := []struct {
		name    string
		pincode string
		valid   bool
	}{
		{
			name:    "valid pincode",
			pincode: "226003",
			valid:   true,
		},
		{
			name:    "leading zero",
			pincode: "026003",
			valid:   false,
		},
		{
			name:    "too short",
			pincode: "22600",
			valid:   false,
		},
		{
			name:    "contains letters",
			pincode: "2260a3",
			valid:   false,
		},
		{
			name:    "empty string",
			pincode: "",
			valid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidPincode(tt.pincode)
			if got != tt.valid {
				t.Fatalf("IsValidPincode(%q) = %v, want %v", tt.pincode, got, tt.valid)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{
			name:  "plain ten digits",
			phone: "9278037924",
			valid: true,
		},
		{
			name:  "with country code",
			phone: "+91 92780 37924",
			valid: true,
		},
		{
			name:  "too few digits",
			phone: "927803792",
			valid: false,
		},
		{
			name:  "contains letters",
			phone: "92780x7924",
			valid: false,
		},
		{
			name:  "empty string",
			phone: "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidPhone(tt.phone)
			if got != tt.valid {
				t.Fatalf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.valid)
			}
		})
	}
}

func TestIsValidRating(t *testing.T) {
	for rating, valid := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := IsValidRating(rating); got != valid {
			t.Fatalf("IsValidRating(%d) = %v, want %v", rating, got, valid)
		}
	}
}
