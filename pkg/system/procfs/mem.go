//go:build linux

package procfs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ja7ad/procmon/pkg/types"
)

// MemStats holds total and used memory in GiB.
type MemStats struct {
	Total float64
	Used  float64
}

// MemUsage reads MemTotal and MemAvailable from meminfo. Used is
// MemTotal-MemAvailable, floored at zero.
func MemUsage(root string) (MemStats, error) {
	f, err := OpenPath(root, "meminfo")
	if err != nil {
		return MemStats{}, err
	}
	defer f.Close()

	var total, avail *types.Bytes
	kib := func(dst **types.Bytes, key string) func(string) error {
		return func(v string) error {
			fs := strings.Fields(v)
			if len(fs) == 0 {
				return parseErr("meminfo", key, v, strconv.ErrSyntax)
			}
			n, err := strconv.ParseUint(fs[0], 10, 64)
			if err != nil {
				return parseErr("meminfo", key, v, err)
			}
			b := types.FromKiB(n)
			*dst = &b
			return nil
		}
	}
	err = scanFields(f, fieldSet{
		"MemTotal":     kib(&total, "MemTotal"),
		"MemAvailable": kib(&avail, "MemAvailable"),
	})
	if err != nil {
		return MemStats{}, err
	}
	if total == nil {
		return MemStats{}, fmt.Errorf("%w: meminfo MemTotal", ErrNoMatch)
	}
	if avail == nil {
		return MemStats{}, fmt.Errorf("%w: meminfo MemAvailable", ErrNoMatch)
	}

	used := 0.0
	if *avail < *total {
		used = (*total - *avail).GiB()
	}
	return MemStats{Total: total.GiB(), Used: used}, nil
}
