package wlan

import (
	"testing"

	"github.com/google/uuid"

	"github.com/strct-org/strct-wlan/internal/errs"
)

func TestGUIDRoundTrip(t *testing.T) {
	for _, s := range []string{
		"{AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE}",
		"{4D36E972-E325-11CE-BFC1-08002BE10318}",
		"{00000000-0000-0000-0000-000000000001}",
	} {
		t.Run(s, func(t *testing.T) {
			id, err := ParseGUID(s)
			if err != nil {
				t.Fatalf("ParseGUID() error = %v", err)
			}
			got, err := FormatGUID(id)
			if err != nil {
				t.Fatalf("FormatGUID() error = %v", err)
			}
			if got != s {
				t.Errorf("round trip = %q, want %q", got, s)
			}
		})
	}
}

func TestFormatGUIDRandom(t *testing.T) {
	for i := 0; i < 32; i++ {
		id := uuid.New()
		s, err := FormatGUID(id)
		if err != nil {
			t.Fatalf("FormatGUID(%s) error = %v", id, err)
		}
		back, err := ParseGUID(s)
		if err != nil {
			t.Fatalf("ParseGUID(%s) error = %v", s, err)
		}
		if back != id {
			t.Fatalf("ParseGUID(FormatGUID(%s)) = %s", id, back)
		}
	}
}

func TestParseGUIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Name", "wlan0"},
		{"Open Brace", "{AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE"},
		{"Close Brace", "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE}"},
		{"Not Hex", "{GGGGGGGG-BBBB-CCCC-DDDD-EEEEEEEEEEEE}"},
		{"No Hyphens", "AAAAAAAABBBBCCCCDDDDEEEEEEEEEEEE"},
		{"URN", "urn:uuid:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGUID(tt.input); !errs.Is(err, errs.KindFormat) {
				t.Errorf("ParseGUID(%q) error = %v, want kind %v", tt.input, err, errs.KindFormat)
			}
		})
	}
}

func TestFormatGUIDNil(t *testing.T) {
	if _, err := FormatGUID(uuid.Nil); !errs.Is(err, errs.KindFormat) {
		t.Errorf("FormatGUID(nil) error = %v, want kind %v", err, errs.KindFormat)
	}
}
