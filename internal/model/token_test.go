package model

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTokenAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"typical mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", false},
		{"system program", "11111111111111111111111111111111", false},
		{"min length", strings.Repeat("1", 32), false},
		{"max length", strings.Repeat("z", 44), false},
		{"empty", "", true},
		{"too short", "abc", true},
		{"too long", strings.Repeat("A", 45), true},
		{"zero digit", "0PjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"capital o", "OPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"capital i", "IPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"lowercase l", "lPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"punctuation", "EPjF+dd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"whitespace", "EPjF dd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateTokenAddress(tc.addr)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateTokenAddress(%q) error = %v, wantErr %v", tc.addr, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTokenAddress) {
				t.Errorf("ValidateTokenAddress(%q) error %v is not ErrInvalidTokenAddress", tc.addr, err)
			}
		})
	}
}
