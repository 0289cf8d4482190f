package procfs

import (
	"iter"
	"os"
	"strconv"
)

// DefaultProcPath is the root of the process-information directory.
const DefaultProcPath = "/proc"

// readDirBatch bounds how many directory entries are resolved per read, so
// enumeration stays lazy even on hosts with tens of thousands of processes.
const readDirBatch = 512

// Pids enumerates the identifiers of processes currently visible under
// /proc.
func Pids() (iter.Seq[int32], error) {
	return PidsFromPath(DefaultProcPath)
}

// PidsFromPath lazily enumerates process identifiers under dir. Entries
// whose names are not positive integers are skipped, as are entries that
// disappear between listing and resolution; process churn during enumeration
// is expected and never an error. An unlistable directory yields an
// *IOError.
//
// The returned sequence is single-pass: it owns an open directory handle,
// closes it when the sequence is exhausted or abandoned, and yields nothing
// on a second iteration. No ordering is guaranteed; callers wanting a stable
// order must sort. A yielded PID carries no liveness guarantee, the process
// may already have exited.
func PidsFromPath(dir string) (iter.Seq[int32], error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, &IOError{Err: err}
	}

	return func(yield func(int32) bool) {
		defer d.Close()
		for {
			names, err := d.Readdirnames(readDirBatch)
			for _, name := range names {
				pid, err := strconv.ParseInt(name, 10, 32)
				if err != nil || pid <= 0 {
					continue
				}
				if !yield(int32(pid)) {
					return
				}
			}
			if err != nil {
				// io.EOF ends the listing. Any other failure mid-walk ends
				// it too; the entries seen so far stand.
				return
			}
		}
	}, nil
}
