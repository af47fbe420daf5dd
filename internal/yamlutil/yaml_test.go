package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		err := Unmarshal([]byte("title: Report\ncount: 3\n"), &out)
		if err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if out["title"] != "Report" {
			t.Errorf("title = %v, want Report", out["title"])
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		if err := Unmarshal(nil, &out); !errors.Is(err, ErrEmptyData) {
			t.Errorf("error = %v, want ErrEmptyData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := Unmarshal([]byte("a: 1"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		big := []byte("a: " + strings.Repeat("x", MaxInputSize))
		var out map[string]any
		if err := Unmarshal(big, &out); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		if err := Unmarshal([]byte("title: [unclosed"), &out); err == nil {
			t.Error("Unmarshal() error = nil, want parse error")
		}
	})
}

func TestUnmarshal_JSONIsYAML(t *testing.T) {
	t.Parallel()

	var out map[string]any
	err := Unmarshal([]byte(`{"title": "Report", "author": "Ann"}`), &out)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["author"] != "Ann" {
		t.Errorf("author = %v, want Ann", out["author"])
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	type doc struct {
		Title string `yaml:"title"`
	}

	t.Run("known fields pass", func(t *testing.T) {
		t.Parallel()

		var out doc
		if err := UnmarshalStrict([]byte("title: ok\n"), &out); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if out.Title != "ok" {
			t.Errorf("Title = %q, want ok", out.Title)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var out doc
		if err := UnmarshalStrict([]byte("title: ok\ntypo: 1\n"), &out); err == nil {
			t.Error("UnmarshalStrict() error = nil, want unknown-field error")
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]string{"title": "Report"}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out map[string]string
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["title"] != "Report" {
		t.Errorf("round trip title = %q, want Report", out["title"])
	}
}
