package nbsave

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Mode
		wantErr error
	}{
		{input: "evidence", want: ModeEvidence},
		{input: "Instructions", want: ModeInstructions},
		{input: " EVIDENCE ", want: ModeEvidence},
		{input: "pdf", wantErr: ErrInvalidMode},
		{input: "", wantErr: ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMode(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseMode(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	if err := (&Input{Mode: ModeEvidence}).Validate(); !errors.Is(err, ErrEmptyNotebook) {
		t.Errorf("Validate() error = %v, want ErrEmptyNotebook", err)
	}
	if err := (&Input{Notebook: []byte("{}"), Mode: ModeInstructions}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}
