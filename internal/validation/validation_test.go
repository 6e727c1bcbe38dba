package validation

import (
	"errors"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minLen  int
		maxLen  int
		want    string
		wantErr error
	}{
		{name: "valid city", input: "London", minLen: 2, maxLen: 64, want: "London"},
		{name: "trims whitespace", input: "  Paris  ", minLen: 2, maxLen: 64, want: "Paris"},
		{name: "city with comma", input: "Portland, OR", minLen: 2, maxLen: 64, want: "Portland, OR"},
		{name: "hyphenated city", input: "Winston-Salem", minLen: 2, maxLen: 64, want: "Winston-Salem"},
		{name: "unicode letters", input: "Zürich", minLen: 2, maxLen: 64, want: "Zürich"},
		{name: "empty", input: "", minLen: 2, maxLen: 64, wantErr: ErrQueryEmpty},
		{name: "whitespace only", input: "   ", minLen: 2, maxLen: 64, wantErr: ErrQueryEmpty},
		{name: "too short", input: "A", minLen: 2, maxLen: 64, wantErr: ErrQueryTooShort},
		{name: "too long", input: "aaaaaaaaaaaaaaaaaaaaa", minLen: 2, maxLen: 20, wantErr: ErrQueryTooLong},
		{name: "invalid characters", input: "London<script>", minLen: 2, maxLen: 64, wantErr: ErrQueryInvalidChars},
		{name: "no length bounds", input: "X", minLen: 0, maxLen: 0, want: "X"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateQuery(tc.input, tc.minLen, tc.maxLen)
			if tc.wantErr != nil {
				if err == nil {
					t.Fatalf("ValidateQuery(%q) expected error, got nil", tc.input)
				}
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("ValidateQuery(%q) error = %v, want %v", tc.input, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateQuery(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ValidateQuery(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
