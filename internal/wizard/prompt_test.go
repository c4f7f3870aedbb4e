package wizard

import (
	"bytes"
	"strings"
	"testing"
)

func TestYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "yes\n", false, true},
		{"uppercase", "Y\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default true", "\n", true, true},
		{"empty takes default false", "\n", false, false},
		{"garbage is no", "maybe\n", true, false},
		{"eof takes default", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.YesNo("Continue?", tt.def)
			if err != nil {
				t.Fatalf("YesNo() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("YesNo(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestYesNoPromptSuffix(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)
	p.YesNo("Continue?", true)

	if !strings.Contains(out.String(), "[Y/n]") {
		t.Errorf("prompt = %q, want default-yes suffix", out.String())
	}
}

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("my-site\n"), &out)

	got, err := p.Line("Site name", "fallback")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if got != "my-site" {
		t.Errorf("Line() = %q", got)
	}
}

func TestLineDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)

	got, err := p.Line("Site name", "fallback")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if got != "fallback" {
		t.Errorf("Line() = %q, want default", got)
	}
	if !strings.Contains(out.String(), "[fallback]") {
		t.Errorf("prompt = %q, want default shown", out.String())
	}
}

func TestChoice(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n"), &out)

	idx, err := p.Choice("Pick a team", []string{"Personal", "Work"})
	if err != nil {
		t.Fatalf("Choice() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("Choice() = %d, want 1", idx)
	}
	if !strings.Contains(out.String(), "1) Personal") || !strings.Contains(out.String(), "2) Work") {
		t.Errorf("options not listed: %q", out.String())
	}
}

func TestChoiceDefaultsToFirst(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)

	idx, err := p.Choice("Pick", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Choice() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("Choice() = %d, want 0", idx)
	}
}

func TestChoiceOutOfRange(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("9\n"), &out)

	if _, err := p.Choice("Pick", []string{"a", "b"}); err == nil {
		t.Error("Choice() out of range succeeded, want error")
	}
}

func TestOrderedNames(t *testing.T) {
	got := orderedNames(map[string]string{
		".gitignore":   "",
		"netlify.toml": "",
		".env.example": "",
	})

	want := []string{"netlify.toml", ".env.example", ".gitignore"}
	if len(got) != len(want) {
		t.Fatalf("orderedNames() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("orderedNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
