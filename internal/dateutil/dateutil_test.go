package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{"iso tokens", "YYYY-MM-DD", "2006-01-02", false},
		{"european", "DD/MM/YYYY", "02/01/2006", false},
		{"long month", "MMMM D, YYYY", "January 2, 2006", false},
		{"short month", "MMM YY", "Jan 06", false},
		{"bracket literal", "[Date:] DD/MM", "Date: 02/01", false},
		{"unknown chars pass through", "YYYY.MM", "2006.01", false},
		{"empty format", "", "", true},
		{"unclosed bracket", "[Date", "", true},
		{"too long", strings.Repeat("Y", MaxFormatLength+1), "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("error %v does not wrap ErrInvalidDateFormat", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"auto uses default format", "auto", "2024-03-15", false},
		{"auto case insensitive", "AUTO", "2024-03-15", false},
		{"auto with format", "auto:DD/MM/YYYY", "15/03/2024", false},
		{"auto with preset", "auto:long", "March 15, 2024", false},
		{"auto with preset european", "auto:european", "15/03/2024", false},
		{"literal passes through", "Printemps 2024", "Printemps 2024", false},
		{"word starting with auto passes through", "automation notes", "automation notes", false},
		{"empty value passes through", "", "", false},
		{"empty format after colon", "auto:", "", true},
		{"bad format", "auto:[oops", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, when)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
