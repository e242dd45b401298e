package charset

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestToUTF8PassesThroughValidInput(t *testing.T) {
	in := []byte("1\n00:00:01,000 --> 00:00:02,000\nçà et là\n")

	out, name, err := ToUTF8(in)
	if err != nil {
		t.Fatalf("ToUTF8 returned error: %v", err)
	}
	if name != UTF8 {
		t.Errorf("expected charset %s, got %s", UTF8, name)
	}
	if string(out) != string(in) {
		t.Errorf("expected input unchanged, got %q", out)
	}
}

func TestToUTF8DecodesLatin1(t *testing.T) {
	// "é" is 0xE9 in every latin charset chardet may pick here.
	line := "Le caf\xe9 est pr\xe9par\xe9 avec soin, d\xe9j\xe0 servi \xe0 la table du fond.\n"
	in := []byte(strings.Repeat(line, 8))

	out, name, err := ToUTF8(in)
	if err != nil {
		t.Fatalf("ToUTF8 returned error: %v (charset %q)", err, name)
	}
	if !utf8.Valid(out) {
		t.Fatalf("output is not valid UTF-8: %q", out)
	}
	if !strings.Contains(string(out), "café") {
		t.Errorf("expected decoded text to contain %q, got %q", "café", out[:40])
	}
}
