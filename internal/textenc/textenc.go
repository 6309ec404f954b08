// Package textenc converts file bytes to and from the engine's internal
// UTF-8 text across the supported on-disk encodings.
//
// Detection checks byte order marks first and falls back to content
// sniffing: valid UTF-8 is taken as UTF-8, anything else is tried as
// Shift-JIS. UTF-16 output always carries a BOM; UTF-8 and Shift-JIS
// output never do.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies one of the supported on-disk text encodings.
type Encoding uint8

const (
	// UTF8 is UTF-8 without BOM, the default.
	UTF8 Encoding = iota

	// UTF16LE is UTF-16 little-endian with BOM.
	UTF16LE

	// UTF16BE is UTF-16 big-endian with BOM.
	UTF16BE

	// ShiftJIS is Shift-JIS (no BOM).
	ShiftJIS
)

// Decode and encode failures.
var (
	// ErrMalformed reports bytes that do not form valid text in the
	// detected encoding.
	ErrMalformed = errors.New("malformed text")

	// ErrUnencodable reports characters the target encoding cannot
	// represent.
	ErrUnencodable = errors.New("unencodable character")
)

// Byte order marks.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// String returns the display label for the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case ShiftJIS:
		return "Shift_JIS"
	default:
		return "UTF-8"
	}
}

// Next returns the encoding after e in the fixed cycle
// UTF-8, UTF-16LE, UTF-16BE, Shift_JIS.
func (e Encoding) Next() Encoding {
	switch e {
	case UTF8:
		return UTF16LE
	case UTF16LE:
		return UTF16BE
	case UTF16BE:
		return ShiftJIS
	default:
		return UTF8
	}
}

// BOM returns the byte order mark written when encoding, or nil when the
// encoding does not use one.
func (e Encoding) BOM() []byte {
	switch e {
	case UTF16LE:
		return bomUTF16LE
	case UTF16BE:
		return bomUTF16BE
	default:
		return nil
	}
}

// Parse maps a label to its encoding. Labels are matched case-insensitively
// and common Shift-JIS spellings are accepted.
func Parse(label string) (Encoding, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16le", "utf16le":
		return UTF16LE, nil
	case "utf-16be", "utf16be":
		return UTF16BE, nil
	case "shift_jis", "shift-jis", "sjis":
		return ShiftJIS, nil
	default:
		return UTF8, fmt.Errorf("unknown encoding %q", label)
	}
}

// Detect guesses the encoding of raw file bytes and reports the length of
// any byte order mark found. BOMs win; otherwise valid UTF-8 is UTF-8 and
// anything else is presumed Shift-JIS. Empty input detects as UTF-8.
func Detect(data []byte) (Encoding, int) {
	if bytes.HasPrefix(data, bomUTF8) {
		return UTF8, len(bomUTF8)
	}
	if bytes.HasPrefix(data, bomUTF16LE) {
		return UTF16LE, len(bomUTF16LE)
	}
	if bytes.HasPrefix(data, bomUTF16BE) {
		return UTF16BE, len(bomUTF16BE)
	}

	if utf8.Valid(data) {
		return UTF8, 0
	}
	return ShiftJIS, 0
}

// Decode converts raw file bytes to UTF-8 text, returning the detected
// encoding alongside. The BOM, if any, is consumed and not part of the
// text. Bytes that fit none of the supported encodings yield ErrMalformed.
func Decode(data []byte) (string, Encoding, error) {
	enc, bomLen := Detect(data)
	body := data[bomLen:]

	switch enc {
	case UTF8:
		if !utf8.Valid(body) {
			return "", enc, fmt.Errorf("decode %s: %w", enc, ErrMalformed)
		}
		return string(body), enc, nil

	case UTF16LE, UTF16BE:
		text, err := decodeUTF16(body, enc)
		if err != nil {
			return "", enc, err
		}
		return text, enc, nil

	default:
		text, err := decodeShiftJIS(body)
		if err != nil {
			return "", ShiftJIS, err
		}
		return text, ShiftJIS, nil
	}
}

// Encode converts UTF-8 text to raw file bytes in the given encoding,
// prepending the encoding's BOM. Characters outside the target repertoire
// yield ErrUnencodable.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case UTF8:
		return []byte(text), nil

	case UTF16LE, UTF16BE:
		body, err := utf16Codec(enc).NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, ErrUnencodable)
		}
		return append(append([]byte{}, enc.BOM()...), body...), nil

	default:
		body, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, ErrUnencodable)
		}
		return body, nil
	}
}

func utf16Codec(enc Encoding) encoding.Encoding {
	endian := unicode.LittleEndian
	if enc == UTF16BE {
		endian = unicode.BigEndian
	}
	return unicode.UTF16(endian, unicode.IgnoreBOM)
}

func decodeUTF16(body []byte, enc Encoding) (string, error) {
	if len(body)%2 != 0 {
		return "", fmt.Errorf("decode %s: odd byte length: %w", enc, ErrMalformed)
	}

	out, err := utf16Codec(enc).NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc, ErrMalformed)
	}
	return string(out), nil
}

// decodeShiftJIS decodes the Shift-JIS fallback. The x/text decoder
// substitutes U+FFFD for illegal sequences instead of failing, and
// Shift-JIS itself cannot encode U+FFFD, so any replacement character in
// the output means the input was not Shift-JIS.
func decodeShiftJIS(body []byte) (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", ShiftJIS, ErrMalformed)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("decode %s: %w", ShiftJIS, ErrMalformed)
	}
	return string(out), nil
}
