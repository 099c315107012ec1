// Package shred implements a multi-pass file overwrite-then-delete utility,
// used to destroy share files and key files once they are no longer needed.
package shred

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
)

// DefaultPasses is the number of overwrite passes performed when the
// caller does not specify one.
const DefaultPasses = 7

// ErrNotRegularFile is returned when a shred target is a directory or
// other non-regular file.
var ErrNotRegularFile = errors.New("shred: target is not a regular file")

// File overwrites the file at path with DefaultPasses passes of random
// bytes before removing it.
func File(path string) error {
	return FileWithPasses(path, DefaultPasses)
}

// FileWithPasses overwrites the file at path with the given number of
// passes of cryptographically random bytes, then removes it. Each pass
// reopens and re-syncs the file so that every pass genuinely reaches
// storage rather than accumulating in a single buffered write.
func FileWithPasses(path string, passes int) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("shred: stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	size := info.Size()

	for i := 0; i < passes; i++ {
		if err := overwritePass(path, size); err != nil {
			return fmt.Errorf("shred: pass %d/%d on %s: %w", i+1, passes, path, err)
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("shred: removing %s: %w", path, err)
	}
	return nil
}

func overwritePass(path string, size int64) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	if _, err := f.WriteAt(buf, 0); err != nil {
		return err
	}
	return f.Sync()
}

// Files shreds every given path, stopping at the first failure and
// returning that failure; files shredded before the failure are not
// restored (this mirrors the core contract of no partial-success rollback,
// see the mixer package and §7 of the design notes).
func Files(paths []string) error {
	for _, p := range paths {
		if err := File(p); err != nil {
			return err
		}
	}
	return nil
}
