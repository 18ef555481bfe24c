package types

import "github.com/docker/go-units"

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// FromKiB converts a kernel-reported kilobyte count (meminfo "kB" is KiB) to Bytes.
func FromKiB(kib uint64) Bytes { return Bytes(kib * 1024) }

// Humanized returns a human-readable string with a binary unit (B, KiB, MiB, GiB, ...).
func (b Bytes) Humanized() string {
	return units.BytesSize(float64(b))
}

// KiB returns the number of kibibytes.
func (b Bytes) KiB() float64 { return float64(b) / 1024 }

// MiB returns the number of mebibytes.
func (b Bytes) MiB() float64 { return float64(b) / (1024 * 1024) }

// GiB returns the number of gibibytes.
func (b Bytes) GiB() float64 { return float64(b) / (1024 * 1024 * 1024) }

// FromGiB converts a GiB-scale float back to Bytes, rounding down.
func FromGiB(gib float64) Bytes {
	if gib <= 0 {
		return 0
	}
	return Bytes(gib * 1024 * 1024 * 1024)
}
