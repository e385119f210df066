// Package encoding converts bank exports to and from UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by ToUTF8 and accepted by FromUTF8.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88591    = "ISO-8859-1"
	ISO88599    = "ISO-8859-9"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ToUTF8 detects the charset of r and returns a reader producing UTF-8,
// along with the charset it decided on. A UTF-8 BOM is stripped, UTF-16 is
// decoded by BOM, valid UTF-8 passes through, anything else goes through
// chardet and falls back to Windows-1252.
func ToUTF8(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, UTF8, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, UTF16LE), UTF16LE, nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, UTF16BE), UTF16BE, nil
	}

	if validPrefix(buf, len(buf) == peekSize) {
		return br, UTF8, nil
	}

	charset := Windows1252

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case UTF8:
			return br, UTF8, nil
		case ISO88591, Windows1252:
			charset = Windows1252
		case ISO88599:
			charset = ISO88599
		}
	}

	return decode(br, charset), charset, nil
}

// validPrefix reports whether buf is UTF-8. A truncated buffer may end in
// the middle of a rune, so up to three trailing bytes are ignored.
func validPrefix(buf []byte, truncated bool) bool {
	if utf8.Valid(buf) {
		return true
	}

	if !truncated {
		return false
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) {
			return true
		}
	}

	return false
}

func decode(r io.Reader, charset string) io.Reader {
	e, err := lookup(charset)
	if err != nil || e == nil {
		return r
	}

	return transform.NewReader(r, e.NewDecoder())
}

// FromUTF8 wraps w so that UTF-8 written to it is stored in charset.
// Characters the charset cannot represent are replaced. Close flushes the
// encoder; it does not close w.
func FromUTF8(w io.Writer, charset string) (io.WriteCloser, error) {
	e, err := lookup(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nopCloser{w}, nil
	}

	return transform.NewWriter(w, xenc.ReplaceUnsupported(e.NewEncoder())), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// ErrUnsupported is returned for charsets FromUTF8 cannot write.
var ErrUnsupported = errors.New("unsupported charset")

func lookup(charset string) (xenc.Encoding, error) {
	switch strings.ToUpper(charset) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "WINDOWS-1252", "CP1252", "ISO-8859-1", "LATIN1":
		return charmap.Windows1252, nil
	case "ISO-8859-9":
		return charmap.ISO8859_9, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnsupported, charset)
}
