package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"typical", 480, false},
		{"minimum", MinWidth, false},
		{"maximum", MaxWidth, false},
		{"fractional", 399.5, false},

		{"zero", 0, true},
		{"negative", -10, true},
		{"too wide", MaxWidth + 1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidth(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWidth) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidWidth)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "malware", false},
		{"with spaces", "command and control", false},
		{"unicode", "Schadsoftware ü", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 129), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 42, false},

		{"negative", -1, true},
		{"fraction", 2.5, true},
		{"huge", 1e12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCount("malware", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCount(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStats) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidStats)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	allowed := []string{"svg", "png"}

	if err := ValidateOneOf(ErrCodeInvalidFormat, "format", "svg", allowed); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateOneOf(ErrCodeInvalidFormat, "format", "gif", allowed)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("expected INVALID_FORMAT, got %v", err)
	}
	if !strings.Contains(UserMessage(err), "svg, png") {
		t.Errorf("message should list allowed values: %q", UserMessage(err))
	}

	if err := ValidateOneOf(ErrCodeInvalidChart, "chart", "", allowed); err == nil {
		t.Error("empty value should be rejected")
	}
}

func TestValidateURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"mongodb", "mongodb://localhost:27017", false},
		{"mongodb srv", "mongodb+srv://cluster.example.net", false},

		{"empty", "", true},
		{"http", "http://localhost", true},
		{"no scheme", "localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURI(tt.input, "mongodb", "mongodb+srv")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/categories.svg", false},
		{"absolute", "/tmp/categories.png", false},
		{"dots in name", "charts..v2.svg", false},

		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"nested traversal", "out/../../x", true},
		{"windows traversal", "out\\..\\x", true},
		{"control char", "out\x01.svg", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
