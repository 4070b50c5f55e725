package errors

import (
	"strings"
	"testing"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://photos.example.com", false},
		{"http with port", "http://localhost:8080", false},
		{"with path", "https://example.com/gallery", false},

		{"empty", "", true},
		{"no scheme", "photos.example.com", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
		{"query", "https://example.com/?x=1", true},
		{"fragment", "https://example.com/#dr", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateBaseURL(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateRedeemCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "k3yC0de", false},
		{"dashes", "abc-def", false},

		{"empty", "", true},
		{"separator", "a:b", true},
		{"space", "a b", true},
		{"newline", "ab\n", true},
		{"too long", strings.Repeat("x", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRedeemCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedeemCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	if err := ValidateFilePath("roll/IMG_0001.jpg"); err != nil {
		t.Errorf("ValidateFilePath() unexpected error: %v", err)
	}
	if err := ValidateFilePath(""); err == nil {
		t.Error("ValidateFilePath(\"\") should fail")
	}
	if err := ValidateFilePath("a\x00b"); err == nil {
		t.Error("ValidateFilePath() should reject null bytes")
	}
}
