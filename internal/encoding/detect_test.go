package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/carteira/internal/encoding"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestToUTF8_Passthrough(t *testing.T) {
	input := "Descrição;Montante\nCafé;12,50\nOperação;-3,00\n"

	r, charset, err := encoding.ToUTF8(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, input, readAll(t, r))
}

func TestToUTF8_Latin1(t *testing.T) {
	// "Descrição;Montante\n" in Windows-1252: ç = 0xE7, ã = 0xE3.
	latin1 := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	r, _, err := encoding.ToUTF8(bytes.NewReader(latin1))
	require.NoError(t, err)
	assert.Equal(t, "Descrição;Montante\n", readAll(t, r))
}

func TestToUTF8_BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Descrição;Montante\n")...)

	r, charset, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, "Descrição;Montante\n", readAll(t, r))
}

func TestToUTF8_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := enc.Bytes([]byte("Data;Valor\n"))
	require.NoError(t, err)

	r, charset, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF16LE, charset)
	assert.Equal(t, "Data;Valor\n", readAll(t, r))
}

// A multi-byte rune split by the detection window must not be mistaken for
// a foreign charset.
func TestToUTF8_RuneAcrossPeekBoundary(t *testing.T) {
	input := strings.Repeat("a", 4095) + "ç" + strings.Repeat("b", 10)

	r, charset, err := encoding.ToUTF8(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, input, readAll(t, r))
}

func TestToUTF8_Empty(t *testing.T) {
	r, _, err := encoding.ToUTF8(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, r))
}

func TestFromUTF8(t *testing.T) {
	var buf bytes.Buffer

	w, err := encoding.FromUTF8(&buf, encoding.Windows1252)
	require.NoError(t, err)

	_, err = io.WriteString(w, "Alimentação")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []byte{'A', 'l', 'i', 'm', 'e', 'n', 't', 'a', 0xE7, 0xE3, 'o'}, buf.Bytes())

	r, _, err := encoding.ToUTF8(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "Alimentação", readAll(t, r))
}

func TestFromUTF8_Passthrough(t *testing.T) {
	var buf bytes.Buffer

	w, err := encoding.FromUTF8(&buf, "")
	require.NoError(t, err)

	_, err = io.WriteString(w, "Alimentação")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "Alimentação", buf.String())
}

func TestFromUTF8_Unsupported(t *testing.T) {
	_, err := encoding.FromUTF8(io.Discard, "EBCDIC")
	assert.Error(t, err)
}
