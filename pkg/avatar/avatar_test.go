package avatar

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestInitials(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Ana Garcia", "AG"},
		{"ana.garcia@example.com", "AG"},
		{"ana", "A"},
		{"ana_luisa maria", "AL"},
		{"", "?"},
		{"  ", "?"},
		{"ñico pérez", "ÑP"},
	}

	for _, tc := range cases {
		if got := Initials(tc.label); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestDataURL(t *testing.T) {
	url := DataURL("Ana Garcia")

	if !strings.HasPrefix(url, "data:image/svg+xml;base64,") {
		t.Fatalf("unexpected prefix: %s", url[:40])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/svg+xml;base64,"))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	svg := string(raw)
	if !strings.Contains(svg, ">AG</text>") {
		t.Errorf("svg does not contain the initials: %s", svg)
	}

	// Same label, same avatar.
	if DataURL("Ana Garcia") != url {
		t.Error("avatar generation must be deterministic")
	}
	if DataURL("Luis") == url {
		t.Error("different labels must produce different avatars")
	}
}
