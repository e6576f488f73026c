package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateSnapshotPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"png", "PlatonicSolids.png", false},
		{"jpg", "out/shot.jpg", false},
		{"jpeg upper", "SHOT.JPEG", false},

		{"empty", "", true},
		{"no extension", "shot", true},
		{"bmp", "shot.bmp", true},
		{"control char", "sh\x01ot.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateSnapshotPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestRequireFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Fast.json")
	if err := os.WriteFile(file, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"existing file", file, false},
		{"missing file", filepath.Join(dir, "missing.json"), true},
		{"directory", dir, true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireFile(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireFile(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMissingFile) {
				t.Errorf("RequireFile(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeMissingFile)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "torus", false},
		{"with space", "Figure-8 Klein", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 200)), true},
		{"newline", "kle\nin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("surface", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
