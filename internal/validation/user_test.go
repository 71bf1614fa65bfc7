package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr bool
	}{
		{"valid", "user-123", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 65), true},
		{"max length", strings.Repeat("a", 64), false},
		{"leading space", " u1", true},
		{"trailing newline", "u1\n", true},
		{"padded past max length", " " + strings.Repeat("a", 64) + " ", true},
		{"inner space", "first last", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUserID(tc.userID)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateUserID(%q) err = %v, wantErr %v", tc.userID, err, tc.wantErr)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		value   *float64
		wantErr bool
	}{
		{"absent", nil, false},
		{"zero", f(0), false},
		{"positive", f(2000), false},
		{"negative", f(-1), true},
		{"nan", f(math.NaN()), true},
		{"inf", f(math.Inf(1)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAmount("calories", tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateAmount err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
