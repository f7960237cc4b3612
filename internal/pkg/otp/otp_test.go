package otp

import (
	"strconv"
	"testing"
)

func TestNumericGenerate(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		wantLength int
	}{
		{name: "six digits", length: 6, wantLength: 6},
		{name: "four digits", length: 4, wantLength: 4},
		{name: "ten digits", length: 10, wantLength: 10},
		{name: "too short falls back to six", length: 2, wantLength: 6},
		{name: "too long falls back to six", length: 11, wantLength: 6},
		{name: "zero falls back to six", length: 0, wantLength: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewNumeric(tt.length)

			if got := gen.Length(); got != tt.wantLength {
				t.Fatalf("Length() = %d, want %d", got, tt.wantLength)
			}

			for range 100 {
				code, err := gen.Generate()
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				if len(code) != tt.wantLength {
					t.Fatalf("Generate() = %q, want %d characters", code, tt.wantLength)
				}
				if _, err := strconv.ParseUint(code, 10, 64); err != nil {
					t.Fatalf("Generate() = %q, want digits only", code)
				}
			}
		})
	}
}

func TestNumericGenerateKeepsLeadingZeros(t *testing.T) {
	gen := NewNumeric(4)

	// With 10^4 possible codes, 5000 draws miss codes below 1000 with
	// probability (0.9)^5000, which is effectively zero.
	seenLeadingZero := false
	for range 5000 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if code[0] == '0' {
			seenLeadingZero = true
			break
		}
	}

	if !seenLeadingZero {
		t.Fatal("expected at least one zero-padded code across 5000 draws")
	}
}
