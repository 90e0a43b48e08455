package charset

import (
	"encoding/json"
	"testing"
)

func TestDifference(t *testing.T) {
	required := FromString("ABC")
	supported := FromString("AB")

	missing := required.Difference(supported)
	if got := missing.String(); got != "C" {
		t.Errorf("Difference = %q, want %q", got, "C")
	}

	// operands are untouched
	if required.Len() != 3 || supported.Len() != 2 {
		t.Error("Difference should not modify its operands")
	}
}

func TestSubsetOf(t *testing.T) {
	tests := []struct {
		name  string
		s     Set
		other Set
		want  bool
	}{
		{"empty", New(), FromString("a"), true},
		{"equal", FromString("ab"), FromString("ba"), true},
		{"proper", FromString("a"), FromString("ab"), true},
		{"missing", FromString("abc"), FromString("ab"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.SubsetOf(tt.other); got != tt.want {
				t.Errorf("SubsetOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringIsCanonical(t *testing.T) {
	a := New('z', 'a', 'é', 'a')
	b := FromString("éza")
	if a.String() != b.String() {
		t.Errorf("equal sets rendered differently: %q vs %q", a.String(), b.String())
	}
	if a.String() != "azé" {
		t.Errorf("String() = %q, want sorted %q", a.String(), "azé")
	}
}

func TestJSON(t *testing.T) {
	in := FromString("ñba")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"abñ"` {
		t.Errorf("Marshal() = %s, want %q", data, "abñ")
	}

	var out Set
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out.String() != in.String() {
		t.Errorf("round trip = %q, want %q", out.String(), in.String())
	}

	if err := json.Unmarshal([]byte(`42`), &out); err == nil {
		t.Error("Unmarshal() should reject non-string payloads")
	}
}

func TestParseExemplars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "a b c", "abc"},
		{"duplicates", "a a b", "ab"},
		{"cluster", "a {ch} b", "abch"},
		{"extraWhitespace", "  a\tb\n c ", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseExemplars(tt.in).String(); got != tt.want {
				t.Errorf("ParseExemplars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
