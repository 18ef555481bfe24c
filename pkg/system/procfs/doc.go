// Package procfs reads point-in-time system metrics from a procfs tree:
// hostname, kernel version, CPU identity, count and usage, memory usage,
// load averages, uptime and a census of process scheduling states.
//
// Every entry point takes the procfs root (normally DefaultRoot) so tests
// can point it at a fixture directory. Each call opens the files it needs,
// parses them and closes them before returning; nothing is cached.
//
// Overview
//
//   - Primitives:
//     OpenPath(root, rel) opens root/rel and logs the path at debug level.
//     ReadLine(r, capacity) reads byte by byte and never consumes past the
//     first newline. ReadLineUntil additionally cuts the line at a delimiter.
//
//   - Scalars:
//     Hostname         sys/kernel/hostname
//     KernelVersion    sys/kernel/osrelease, cut at the first '-'
//     CPUModel         cpuinfo "model name" (MatchLast or MatchFirst)
//     CPUUnits         cpuinfo highest "processor" index + 1
//     Uptime           uptime, first field, seconds
//     ReadLoadAvg      loadavg, first three fields
//     MemUsage         meminfo MemTotal/MemAvailable, in GiB
//
//   - CPU usage:
//     ReadCPUStats returns the idle/total tick counters of the aggregate cpu
//     line in stat. CPUUsage(prev, curr) computes 1-Δidle/Δtotal and returns
//     0 when a counter went backwards or no ticks elapsed. Usage combines
//     both: the caller keeps the returned snapshot for the next poll.
//
//   - Task census:
//     Tasks(root, opts) counts every numeric entry of root by the first
//     letter of its status State field and lists the non-sleeping ones.
//
//	R        running
//	D        disk sleep
//	S, I     sleeping
//	T        stopped
//	t        tracing stop
//	Z        zombie
//
//     Tasks that vanish during the walk are skipped. The active list is
//     bounded by CensusOptions.Capacity; overflowing it returns
//     ErrCapacityExceeded instead of dropping tasks silently.
//
//   - Errors (errs.go):
//     ErrInvalidArgument  : empty root/path or bad capacity
//     ErrNotFound         : file missing (wraps fs.ErrNotExist)
//     ErrIO               : other open/read faults
//     ErrParse            : malformed numeric field
//     ErrNoMatch          : wanted key absent, or file empty
//     ErrNoCPU            : stat does not start with the cpu line
//     ErrCapacityExceeded : census overflow
//
// Example: polling CPU usage
//
//	/*
//	prev, err := procfs.ReadCPUStats(procfs.DefaultRoot)
//	if err != nil { log.Fatal(err) }
//	for range time.Tick(time.Second) {
//	    var u float64
//	    u, prev, err = procfs.Usage(procfs.DefaultRoot, prev)
//	    if err != nil { log.Print(err); continue }
//	    fmt.Printf("cpu %.1f%%\n", u*100)
//	}
//	*/
//
// Package import path: github.com/ja7ad/procmon/pkg/system/procfs
package procfs
