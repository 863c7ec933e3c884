package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Song Sparrow", want: "Song Sparrow"},
		{name: "asterisks", in: "*not italics*", want: `\*not italics\*`},
		{name: "underscore in name", in: "weird_name", want: `weird\_name`},
		{name: "backtick", in: "a `code` span", want: "a \\`code\\` span"},
		{name: "url left intact", in: "see https://www.inaturalist.org/taxa/1-aves here", want: "see https://www.inaturalist.org/taxa/1-aves here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeMarkdown(tt.in); got != tt.want {
				t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProtectLeadingBlanks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no blanks", in: "taxon", want: "taxon"},
		{name: "leading blanks wrapped", in: "   indented", want: "​**   **indented"},
		{name: "interior blanks untouched", in: "a  b", want: "a  b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProtectLeadingBlanks(tt.in); got != tt.want {
				t.Errorf("ProtectLeadingBlanks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLink(t *testing.T) {
	if got := Link("Aves", "https://example.org/aves"); got != "[Aves](https://example.org/aves)" {
		t.Errorf("Link() = %q", got)
	}
	if got := Link("Aves", ""); got != "Aves" {
		t.Errorf("Link() with empty url = %q, want bare text", got)
	}
}
