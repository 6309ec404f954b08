package textenc

import (
	"bytes"
	"errors"
	"testing"
)

var sjisNihongo = []byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA} // 日本語

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantEnc Encoding
		wantBOM int
	}{
		{"empty", nil, UTF8, 0},
		{"plain ascii", []byte("hello"), UTF8, 0},
		{"utf-8 multibyte", []byte("héllo 日本"), UTF8, 0},
		{"utf-8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, UTF8, 3},
		{"utf-16le bom", []byte{0xFF, 0xFE, 0x68, 0x00}, UTF16LE, 2},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0x00, 0x68}, UTF16BE, 2},
		{"shift-jis", sjisNihongo, ShiftJIS, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, bomLen := Detect(tt.data)
			if enc != tt.wantEnc || bomLen != tt.wantBOM {
				t.Errorf("Detect() = %v, %d, want %v, %d", enc, bomLen, tt.wantEnc, tt.wantBOM)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantEnc Encoding
	}{
		{"empty", nil, "", UTF8},
		{"utf-8", []byte("héllo"), "héllo", UTF8},
		{"utf-8 bom stripped", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi", UTF8},
		{"utf-16le", []byte{0xFF, 0xFE, 0x68, 0x00, 0x69, 0x00}, "hi", UTF16LE},
		{"utf-16be", []byte{0xFE, 0xFF, 0x00, 0x68, 0x00, 0x69}, "hi", UTF16BE},
		{"utf-16le bom only", []byte{0xFF, 0xFE}, "", UTF16LE},
		{"shift-jis", sjisNihongo, "日本語", ShiftJIS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got != tt.want || enc != tt.wantEnc {
				t.Errorf("Decode() = %q, %v, want %q, %v", got, enc, tt.want, tt.wantEnc)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"invalid lead byte", []byte{0xFD}},
		{"invalid in both utf-8 and shift-jis", []byte{0xFF, 0x01}},
		{"dangling shift-jis lead byte", []byte{0x93, 0xFA, 0x93}},
		{"utf-16le odd length", []byte{0xFF, 0xFE, 0x68}},
		{"utf-16be odd length", []byte{0xFE, 0xFF, 0x00, 0x68, 0x00}},
		{"utf-8 bom with invalid body", []byte{0xEF, 0xBB, 0xBF, 0xC3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.data)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%v) error = %v, want ErrMalformed", tt.data, err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		text string
		enc  Encoding
		want []byte
	}{
		{"utf-8 no bom", "héllo", UTF8, []byte("héllo")},
		{"utf-16le", "hi", UTF16LE, []byte{0xFF, 0xFE, 0x68, 0x00, 0x69, 0x00}},
		{"utf-16be", "hi", UTF16BE, []byte{0xFE, 0xFF, 0x00, 0x68, 0x00, 0x69}},
		{"utf-16le surrogate pair", "\U0001F389", UTF16LE, []byte{0xFF, 0xFE, 0x3C, 0xD8, 0x89, 0xDF}},
		{"shift-jis", "日本語", ShiftJIS, sjisNihongo},
		{"empty utf-16le is bom only", "", UTF16LE, []byte{0xFF, 0xFE}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.text, tt.enc)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(%q, %v) = % X, want % X", tt.text, tt.enc, got, tt.want)
			}
		})
	}
}

func TestEncodeUnencodable(t *testing.T) {
	// Emoji are outside the Shift-JIS repertoire.
	_, err := Encode("party \U0001F389", ShiftJIS)
	if !errors.Is(err, ErrUnencodable) {
		t.Errorf("Encode(emoji, ShiftJIS) error = %v, want ErrUnencodable", err)
	}
}

func TestRoundTrip(t *testing.T) {
	// Non-ASCII so the Shift-JIS bytes cannot pass as UTF-8 on re-detect.
	text := "Hello, 世界\n日本語テキスト\n"

	for _, enc := range []Encoding{UTF8, UTF16LE, UTF16BE, ShiftJIS} {
		data, err := Encode(text, enc)
		if err != nil {
			t.Fatalf("Encode(%v) error: %v", enc, err)
		}

		got, gotEnc, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode of %v output error: %v", enc, err)
		}
		if got != text {
			t.Errorf("%v round trip = %q, want %q", enc, got, text)
		}
		if gotEnc != enc {
			t.Errorf("%v round trip detected as %v", enc, gotEnc)
		}
	}
}

func TestEncodingCycle(t *testing.T) {
	want := []Encoding{UTF16LE, UTF16BE, ShiftJIS, UTF8}

	enc := UTF8
	for _, next := range want {
		enc = enc.Next()
		if enc != next {
			t.Fatalf("Next() = %v, want %v", enc, next)
		}
	}
}

func TestEncodingString(t *testing.T) {
	tests := []struct {
		enc  Encoding
		want string
	}{
		{UTF8, "UTF-8"},
		{UTF16LE, "UTF-16LE"},
		{UTF16BE, "UTF-16BE"},
		{ShiftJIS, "Shift_JIS"},
	}

	for _, tt := range tests {
		if got := tt.enc.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.enc, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		label   string
		want    Encoding
		wantErr bool
	}{
		{"UTF-8", UTF8, false},
		{"utf-8", UTF8, false},
		{"utf8", UTF8, false},
		{"UTF-16LE", UTF16LE, false},
		{"utf-16be", UTF16BE, false},
		{"Shift_JIS", ShiftJIS, false},
		{"shift-jis", ShiftJIS, false},
		{"sjis", ShiftJIS, false},
		{"latin-1", UTF8, true},
		{"", UTF8, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.label)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
