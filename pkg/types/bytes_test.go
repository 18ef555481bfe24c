package types

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Bytes
		want string
	}{
		{Bytes(0), "0B"},
		{Bytes(1), "1B"},
		{Bytes(1023), "1023B"},           // just below 1 KiB
		{Bytes(1024), "1KiB"},            // exactly 1 KiB
		{Bytes(1024 * 1024), "1MiB"},     // exactly 1 MiB
		{Bytes(1024 * 1024 * 1024), "1GiB"},
		{Bytes(1 << 40), "1TiB"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%d", i, uint64(tc.in)), func(t *testing.T) {
			got := tc.in.Humanized()
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBytes_Humanized_NonRound(t *testing.T) {
	assert.Equal(t, "1.5KiB", Bytes(1536).Humanized())

	b := Bytes(uint64(math.Round(2.75 * float64(1<<30))))
	assert.Equal(t, "2.75GiB", b.Humanized())
}

func TestBytes_UnitAccessors(t *testing.T) {
	const (
		KiB = 1024.0
		MiB = 1024.0 * 1024.0
		GiB = 1024.0 * 1024.0 * 1024.0
	)
	assert.InDelta(t, 1.0, Bytes(1024).KiB(), 1e-12)
	assert.InDelta(t, 1.0, Bytes(1<<20).MiB(), 1e-12)
	assert.InDelta(t, 1.0, Bytes(1<<30).GiB(), 1e-12)

	b := Bytes(1536) // 1.5 KiB
	assert.InDelta(t, 1.5, b.KiB(), 1e-12)
	assert.InDelta(t, 1.5/KiB, b.MiB(), 1e-12)
	assert.InDelta(t, 1.5/MiB, b.GiB(), 1e-12)

	b = Bytes(5 * (1 << 30))
	assert.InDelta(t, (5*GiB)/KiB, b.KiB(), 1e-6)
	assert.InDelta(t, 5.0, b.GiB(), 1e-12)
}

func TestFromKiB(t *testing.T) {
	// meminfo reports kB that are really KiB
	assert.Equal(t, Bytes(16384000*1024), FromKiB(16384000))
	assert.InDelta(t, 15.625, FromKiB(16384000).GiB(), 1e-9)
}

func TestFromGiB(t *testing.T) {
	assert.Equal(t, Bytes(1<<30), FromGiB(1))
	assert.Equal(t, Bytes(0), FromGiB(-2))
	assert.Equal(t, Bytes(0), FromGiB(0))
}
