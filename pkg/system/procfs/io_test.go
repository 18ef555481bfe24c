//go:build linux

package procfs

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPath_InvalidArgument(t *testing.T) {
	_, err := OpenPath("", "stat")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = OpenPath("/proc", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOpenPath_NotFound(t *testing.T) {
	root := writeTree(t, map[string]string{"stat": "cpu 1 2 3 4\n"})

	_, err := OpenPath(root, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	f, err := OpenPath(root, "stat")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestReadLine_StopsAtNewline(t *testing.T) {
	r := strings.NewReader("abc\ndef\n")

	line, err := ReadLine(r, 64)
	require.NoError(t, err)
	assert.Equal(t, "abc\n", string(line))

	line, err = ReadLine(r, 64)
	require.NoError(t, err)
	assert.Equal(t, "def\n", string(line))

	_, err = ReadLine(r, 64)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_DoesNotOverRead(t *testing.T) {
	// OneByteReader would hide over-reads; a plain reader exposes them.
	r := strings.NewReader("first\nsecond line\n")
	_, err := ReadLine(r, 64)
	require.NoError(t, err)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second line\n", string(rest))
}

func TestReadLine_Capacity(t *testing.T) {
	r := strings.NewReader("abcdef\n")

	line, err := ReadLine(r, 3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(line))

	line, err = ReadLine(r, 3)
	require.NoError(t, err)
	assert.Equal(t, "def", string(line))

	line, err = ReadLine(r, 3)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(line))

	_, err = ReadLine(r, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReadLine_NoTrailingNewline(t *testing.T) {
	r := strings.NewReader("xyz")

	line, err := ReadLine(r, 64)
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(line))

	_, err = ReadLine(r, 64)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_ReadFault(t *testing.T) {
	boom := errors.New("boom")
	_, err := ReadLine(iotest.ErrReader(boom), 64)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, boom)
}

func TestReadLine_DataWithError(t *testing.T) {
	// DataErrReader returns the last byte together with io.EOF.
	r := iotest.DataErrReader(strings.NewReader("ab"))
	line, err := ReadLine(r, 64)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(line))
}

func TestReadLineUntil(t *testing.T) {
	tok, n, err := ReadLineUntil(strings.NewReader("6.8.0-45-generic\n"), 64, "-\n")
	require.NoError(t, err)
	assert.Equal(t, "6.8.0", tok)
	assert.Equal(t, 17, n)

	tok, _, err = ReadLineUntil(strings.NewReader("12345.67 54321.00\n"), 64, " ")
	require.NoError(t, err)
	assert.Equal(t, "12345.67", tok)

	tok, _, err = ReadLineUntil(strings.NewReader("no-delim-here"), 64, "\n")
	require.NoError(t, err)
	assert.Equal(t, "no-delim-here", tok)

	_, _, err = ReadLineUntil(strings.NewReader(""), 64, "\n")
	assert.ErrorIs(t, err, io.EOF)
}

func TestSplitField(t *testing.T) {
	cases := []struct {
		line, key, value string
		ok               bool
	}{
		{"MemTotal:       16384000 kB", "MemTotal", "16384000 kB", true},
		{"model name\t: Intel(R) Xeon(R)", "model name", "Intel(R) Xeon(R)", true},
		{"Name:\tkworker/0:1H", "Name", "kworker/0:1H", true},
		{"Name:\ttrailing  ", "Name", "trailing  ", true},
		{"flags\t\t:", "flags", "", true},
		{"no colon here", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			k, v, ok := splitField(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.key, k)
			assert.Equal(t, tc.value, v)
		})
	}
}

func TestScanFields_HandlerErrorStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := scanFields(strings.NewReader("A: 1\nA: 2\nB: 3\n"), fieldSet{
		"A": func(string) error { calls++; return boom },
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
