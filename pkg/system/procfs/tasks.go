//go:build linux

package procfs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultTaskCapacity bounds the active task list when no capacity is given.
	DefaultTaskCapacity = 5000

	// MaxTaskNameLen is the display width of TaskInfo.Name in characters.
	MaxTaskNameLen = 25
)

// TaskState is the label of a process scheduling state.
type TaskState string

const (
	StateRunning     TaskState = "running"
	StateDiskSleep   TaskState = "disk sleep"
	StateSleeping    TaskState = "sleeping"
	StateStopped     TaskState = "stopped"
	StateTracingStop TaskState = "tracing stop"
	StateZombie      TaskState = "zombie"
	// StateUnknown is left on tasks whose state letter is not recognised.
	StateUnknown TaskState = ""
)

// TaskInfo describes one process that was not sleeping at census time.
type TaskInfo struct {
	PID   int
	UID   int
	Name  string
	State TaskState
}

// TaskStats is the result of one census.
//
// Total == Running+Waiting+Sleeping+Stopped+Zombie+unknown, and
// len(Active) == Total-Sleeping.
type TaskStats struct {
	Total    int
	Running  int
	Waiting  int
	Sleeping int
	Stopped  int
	Zombie   int

	// Active lists non-sleeping tasks in directory enumeration order, which
	// the kernel does not define.
	Active []TaskInfo

	capacity int
}

// CensusOptions tunes Tasks.
type CensusOptions struct {
	// Capacity caps len(Active). <= 0 means DefaultTaskCapacity.
	Capacity int
}

// NewTaskStats returns zeroed stats whose active list holds up to capacity
// entries (<= 0 means DefaultTaskCapacity).
func NewTaskStats(capacity int) *TaskStats {
	if capacity <= 0 {
		capacity = DefaultTaskCapacity
	}
	return &TaskStats{
		Active:   make([]TaskInfo, 0, min(capacity, 512)),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of active tasks.
func (s *TaskStats) Capacity() int { return s.capacity }

// classify bumps the counter for the first letter of a status State value
// and returns the matching label.
func (s *TaskStats) classify(state string) TaskState {
	s.Total++
	if state == "" {
		return StateUnknown
	}
	switch state[0] {
	case 'R':
		s.Running++
		return StateRunning
	case 'D':
		s.Waiting++
		return StateDiskSleep
	case 'S', 'I':
		s.Sleeping++
		return StateSleeping
	case 'T':
		s.Stopped++
		return StateStopped
	case 't':
		s.Stopped++
		return StateTracingStop
	case 'Z':
		s.Zombie++
		return StateZombie
	default:
		return StateUnknown
	}
}

func (s *TaskStats) add(st taskStatus) error {
	label := s.classify(st.state)
	if label == StateSleeping {
		return nil
	}
	if len(s.Active) >= s.capacity {
		return fmt.Errorf("%w: more than %d active tasks (pid %d)", ErrCapacityExceeded, s.capacity, st.pid)
	}
	s.Active = append(s.Active, TaskInfo{
		PID:   st.pid,
		UID:   st.uid,
		Name:  st.name,
		State: label,
	})
	return nil
}

// Tasks walks the numeric entries of root, reads each <pid>/status and
// aggregates the tasks by scheduling state.
//
// Processes that exit between the directory listing and the status read
// are skipped. Failing to open root is fatal. When more tasks are active
// than opts.Capacity allows, Tasks stops and returns the stats gathered so
// far together with ErrCapacityExceeded.
func Tasks(root string, opts CensusOptions) (*TaskStats, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root", ErrInvalidArgument)
	}
	dir, err := os.Open(root)
	if err != nil {
		return nil, openErr(err)
	}
	defer dir.Close()

	stats := NewTaskStats(opts.Capacity)
	for {
		ents, err := dir.ReadDir(256)
		for _, ent := range ents {
			name := ent.Name()
			if !isNumeric(name) {
				continue
			}
			st, err := readTaskStatus(root, name)
			if err != nil {
				slog.Debug("skipping task", "pid", name, "err", err)
				continue
			}
			if err := stats.add(st); err != nil {
				return stats, err
			}
		}
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("%w: read %s: %w", ErrIO, root, err)
		}
	}
}

type taskStatus struct {
	pid   int
	uid   int
	name  string
	state string
}

func readTaskStatus(root, pid string) (taskStatus, error) {
	st := taskStatus{uid: -1}
	var err error
	if st.pid, err = strconv.Atoi(pid); err != nil {
		return st, parseErr(pid, "pid", pid, err)
	}

	f, err := OpenPath(root, pid+"/status")
	if err != nil {
		return st, err
	}
	defer f.Close()

	err = scanFields(f, fieldSet{
		"Name": func(v string) error {
			st.name = truncate(v, MaxTaskNameLen)
			return nil
		},
		"State": func(v string) error {
			st.state = v
			return nil
		},
		"Uid": func(v string) error {
			// real effective saved filesystem
			fs := strings.Fields(v)
			if len(fs) == 0 {
				return parseErr(pid+"/status", "Uid", v, strconv.ErrSyntax)
			}
			uid, err := strconv.Atoi(fs[0])
			if err != nil {
				return parseErr(pid+"/status", "Uid", v, err)
			}
			st.uid = uid
			return nil
		},
	})
	return st, err
}

// isNumeric reports whether name is a non-empty run of decimal digits.
func isNumeric(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
