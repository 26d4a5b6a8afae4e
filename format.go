package lmfmt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/lmfmt/lmfmt/encode"
	"github.com/lmfmt/lmfmt/normalize"
)

// Header begins every conversion result, including all error paths.
const Header = "#content converted from json\n"

// Format converts an arbitrary Go value into a compact, brace-free,
// indentation-structured text representation for language models. It
// always returns displayable text and never panics: normalization
// failures and anything escaping the pipeline are embedded in the
// returned text as bracketed diagnostic lines after the fixed header.
func Format(data any, opts ...Option) (res string) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	defer func() {
		if r := recover(); r != nil {
			res = govern(Header+fmt.Sprintf("[Fatal conversion error: %v]", r), cfg.MaxChars)
		}
	}()

	node, err := normalize.Value(data)
	if err != nil {
		return govern(Header+diagnostic(err), cfg.MaxChars)
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	if err := encode.Encode(node, &buf, cfg.encodeOptions()...); err != nil {
		return govern(Header+fmt.Sprintf("[Fatal conversion error: %v]", err), cfg.MaxChars)
	}
	return govern(buf.String(), cfg.MaxChars)
}

// diagnostic maps a normalization failure onto its bracketed line.
func diagnostic(err error) string {
	var (
		circular    *normalize.CircularError
		unsupported *normalize.UnsupportedTypeError
	)
	switch {
	case errors.As(err, &circular):
		return fmt.Sprintf("[Circular structure: %v]", circular)
	case errors.As(err, &unsupported):
		return fmt.Sprintf("[Unsupported value: %v]", unsupported)
	default:
		return fmt.Sprintf("[Conversion error: %v]", err)
	}
}
