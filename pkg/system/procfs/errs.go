package procfs

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrInvalidArgument indicates an empty root or relative path, or a
	// non-positive read capacity.
	ErrInvalidArgument = errors.New("procfs: invalid argument")

	// ErrNotFound indicates that a required pseudo-file does not exist.
	// The underlying fs.ErrNotExist stays reachable through errors.Is.
	ErrNotFound = errors.New("procfs: not found")

	// ErrIO indicates an open or read fault other than a missing file.
	ErrIO = errors.New("procfs: i/o error")

	// ErrParse indicates a malformed numeric field or a truncated line.
	ErrParse = errors.New("procfs: malformed field")

	// ErrNoMatch indicates that a scanned file had no line with the wanted key.
	ErrNoMatch = errors.New("procfs: no matching line")

	// ErrNoCPU indicates that stat did not start with the aggregate cpu line.
	ErrNoCPU = errors.New("procfs: no cpu line")

	// ErrCapacityExceeded indicates that the task census found more active
	// tasks than the configured capacity allows.
	ErrCapacityExceeded = errors.New("procfs: active task capacity exceeded")
)

func openErr(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func parseErr(rel, field, raw string, err error) error {
	return fmt.Errorf("%w: %s %s %q: %w", ErrParse, rel, field, raw, err)
}
