package format

import "testing"

func TestApplyDialect(t *testing.T) {
	in := "title\n\n`1` Aves\n`2` Corvus\n\nfooter"

	if got := ApplyDialect(in, DialectDiscord); got != in {
		t.Errorf("discord dialect changed text:\n%s", got)
	}

	want := "title\n\n`1` Aves\\\n`2` Corvus\n\nfooter"
	if got := ApplyDialect(in, DialectMarkdown); got != want {
		t.Errorf("markdown dialect = %q, want %q", got, want)
	}
}
