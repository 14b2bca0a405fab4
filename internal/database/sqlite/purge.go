package sqlite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Purge overwrites the staging database and its side files with zeros and
// removes them. The snapshots hold personal data and should not outlive the
// cleanup. Missing files are skipped; the removed paths are returned.
func Purge(path string) ([]string, error) {
	var removed []string
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		ok, err := shred(p)
		if err != nil {
			return removed, fmt.Errorf("%s %s: %w", ErrMsgFailedToPurge, p, err)
		}
		if ok {
			removed = append(removed, p)
		}
	}
	return removed, nil
}

func shred(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false, err
	}

	zeros := make([]byte, purgeOverwriteSize)
	for remaining := info.Size(); remaining > 0; {
		n := int64(len(zeros))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(zeros[:n]); err != nil {
			f.Close()
			return false, err
		}
		remaining -= n
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}
	return true, os.Remove(path)
}
