// Package charset detects and converts the text encoding of caption files.
package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const (
	UTF8 = "UTF-8"

	sniffLen = 512
)

// chardet names that the WHATWG index spells differently
var aliases = map[string]string{
	"GB-18030": "gb18030",
}

// Detect guesses the charset of data from its first bytes.
func Detect(data []byte) (string, error) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	det := chardet.NewTextDetector()
	guess, err := det.DetectBest(head)
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}

	return guess.Charset, nil
}

// ToUTF8 returns data unchanged when it already is valid UTF-8, otherwise it
// decodes it from the detected charset. The charset used is returned as well.
func ToUTF8(data []byte) ([]byte, string, error) {
	if utf8.Valid(data) {
		return data, UTF8, nil
	}

	name, err := Detect(data)
	if err != nil {
		return nil, "", err
	}
	if strings.EqualFold(name, UTF8) {
		return nil, name, fmt.Errorf("invalid UTF-8 sequence")
	}

	lookup := name
	if alias, ok := aliases[name]; ok {
		lookup = alias
	}
	enc, err := htmlindex.Get(lookup)
	if err != nil {
		return nil, name, fmt.Errorf("unsupported charset %s: %w", name, err)
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, name, fmt.Errorf("decode %s: %w", name, err)
	}
	if !utf8.Valid(out) {
		return nil, name, fmt.Errorf("decode %s: result is not valid UTF-8", name)
	}

	return out, name, nil
}
