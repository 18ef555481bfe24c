//go:build linux

package procfs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is where the kernel mounts procfs.
const DefaultRoot = "/proc"

// lineCapacity bounds single-line reads; every single-line file consumed
// here (hostname, osrelease, uptime, loadavg, the stat cpu line) fits.
const lineCapacity = 256

// OpenPath opens root/rel for reading.
func OpenPath(root, rel string) (*os.File, error) {
	if root == "" || rel == "" {
		return nil, fmt.Errorf("%w: root=%q path=%q", ErrInvalidArgument, root, rel)
	}
	slog.Debug("opening path", "root", root, "path", rel)

	f, err := os.Open(filepath.Join(root, rel))
	if err != nil {
		return nil, openErr(err)
	}
	return f, nil
}

// ReadLine reads r one byte at a time until it has consumed a newline
// (kept in the result) or collected capacity bytes. It never reads past the
// first newline, so the position of r is exactly after the returned line.
//
// At end of stream with nothing read it returns io.EOF. A stream ending
// without a trailing newline returns the partial line and a nil error.
func ReadLine(r io.Reader, capacity int) ([]byte, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidArgument, capacity)
	}

	line := make([]byte, 0, min(capacity, lineCapacity))
	var c [1]byte
	for len(line) < capacity {
		n, err := r.Read(c[:])
		if n == 1 {
			line = append(line, c[0])
			if c[0] == '\n' {
				return line, nil
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return nil, io.EOF
			}
			return line, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return line, nil
}

// ReadLineUntil reads one line like ReadLine and cuts it at the first byte
// found in delim. n is the number of bytes consumed from r.
func ReadLineUntil(r io.Reader, capacity int, delim string) (token string, n int, err error) {
	line, err := ReadLine(r, capacity)
	if err != nil {
		return "", 0, err
	}
	n = len(line)
	if i := bytes.IndexAny(line, delim); i >= 0 {
		line = line[:i]
	}
	return string(line), n, nil
}

// readToken opens root/rel and returns the first line cut at delim.
func readToken(root, rel, delim string) (string, error) {
	f, err := OpenPath(root, rel)
	if err != nil {
		return "", err
	}
	defer f.Close()

	tok, _, err := ReadLineUntil(f, lineCapacity, delim)
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %s is empty", ErrNoMatch, rel)
	}
	return tok, err
}

// readFirstLine opens root/rel and returns its first line without the newline.
func readFirstLine(root, rel string) (string, error) {
	return readToken(root, rel, "\n")
}

// fieldSet maps the exact key of a "Key: value" line to the handler that
// consumes its value.
type fieldSet map[string]func(value string) error

// scanFields reads every line of r, splits it on the first colon and hands
// the value of each known key to its handler. Lines without a colon and
// unknown keys are ignored.
func scanFields(r io.Reader, fields fieldSet) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := splitField(sc.Text())
		if !ok {
			continue
		}
		fn, ok := fields[key]
		if !ok {
			continue
		}
		if err := fn(value); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// splitField splits "Key:<ws>value" at the first colon. The key is trimmed
// on both sides; the value only loses its leading separator, since process
// names may legitimately end in spaces.
func splitField(line string) (key, value string, ok bool) {
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimLeft(v, " \t"), true
}
