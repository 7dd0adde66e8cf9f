package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Decoder converts file content from a legacy charset into UTF-8 before
// offsets are computed, so spans always refer to the decoded text.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder resolves a charset label ("windows-1251", "latin1", "shift_jis").
// An empty label or any UTF-8 alias returns nil: no decoding is needed.
func NewDecoder(label string) (*Decoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown source encoding %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	if name == "utf-8" {
		return nil, nil
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Name returns the canonical charset name.
func (d *Decoder) Name() string { return d.name }

// Decode converts content to UTF-8.
func (d *Decoder) Decode(content []byte) ([]byte, error) {
	out, _, err := transform.Bytes(d.enc.NewDecoder(), content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.name, err)
	}
	return out, nil
}

// Encode converts UTF-8 content back to the charset. Runes the charset
// cannot represent are an error.
func (d *Decoder) Encode(content []byte) ([]byte, error) {
	out, _, err := transform.Bytes(d.enc.NewEncoder(), content)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", d.name, err)
	}
	return out, nil
}
