//go:build linux

package procfs

import (
	"fmt"
	"strconv"
	"strings"
)

// Match selects which of several matching cpuinfo lines wins.
type Match int

const (
	// MatchLast keeps the value of the last matching line. cpuinfo repeats
	// the model once per logical CPU, so in practice both modes agree.
	MatchLast Match = iota
	// MatchFirst keeps the value of the first matching line.
	MatchFirst
)

// LoadAvg holds the 1, 5 and 15 minute load averages.
type LoadAvg struct {
	One     float64
	Five    float64
	Fifteen float64
}

// Hostname reads sys/kernel/hostname.
func Hostname(root string) (string, error) {
	return readToken(root, "sys/kernel/hostname", "\n")
}

// KernelVersion reads sys/kernel/osrelease and drops everything from the
// first hyphen on, e.g. "6.8.0-45-generic" becomes "6.8.0".
func KernelVersion(root string) (string, error) {
	return readToken(root, "sys/kernel/osrelease", "-\n")
}

// CPUModel returns the "model name" value from cpuinfo.
func CPUModel(root string, m Match) (string, error) {
	f, err := OpenPath(root, "cpuinfo")
	if err != nil {
		return "", err
	}
	defer f.Close()

	var (
		model string
		found bool
	)
	err = scanFields(f, fieldSet{
		"model name": func(v string) error {
			if found && m == MatchFirst {
				return nil
			}
			model, found = v, true
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: cpuinfo model name", ErrNoMatch)
	}
	return model, nil
}

// CPUUnits returns the number of logical CPUs listed in cpuinfo: the highest
// zero-based "processor" index plus one.
func CPUUnits(root string) (int, error) {
	f, err := OpenPath(root, "cpuinfo")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	highest := -1
	err = scanFields(f, fieldSet{
		"processor": func(v string) error {
			idx, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return parseErr("cpuinfo", "processor", v, err)
			}
			highest = max(highest, idx)
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	if highest < 0 {
		return 0, fmt.Errorf("%w: cpuinfo processor", ErrNoMatch)
	}
	return highest + 1, nil
}

// Uptime returns the seconds since boot, the first field of uptime.
func Uptime(root string) (float64, error) {
	tok, err := readToken(root, "uptime", " \n")
	if err != nil {
		return 0, err
	}
	secs, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, parseErr("uptime", "seconds", tok, err)
	}
	return secs, nil
}

// ReadLoadAvg parses the first three fields of loadavg, e.g.
// "0.52 0.58 0.59 2/912 12345".
func ReadLoadAvg(root string) (LoadAvg, error) {
	line, err := readFirstLine(root, "loadavg")
	if err != nil {
		return LoadAvg{}, err
	}
	fs := strings.Fields(line)
	if len(fs) < 3 {
		return LoadAvg{}, fmt.Errorf("%w: loadavg has %d fields", ErrParse, len(fs))
	}

	var vals [3]float64
	for i, name := range [3]string{"1m", "5m", "15m"} {
		v, err := strconv.ParseFloat(fs[i], 64)
		if err != nil {
			return LoadAvg{}, parseErr("loadavg", name, fs[i], err)
		}
		vals[i] = v
	}
	return LoadAvg{One: vals[0], Five: vals[1], Fifteen: vals[2]}, nil
}
