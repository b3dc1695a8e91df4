//go:build windows

package vault

import (
	"fmt"
	"os"
)

// No flock here. withWriteLock still serializes sends inside one process,
// two deploy tool processes on the same data directory can race on seqno.

const flockSupported = false

func lockWallet(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("vault: open wallet lock %s: %w", path, err)
	}
	return f, nil
}

func tryLockWallet(path string) (*os.File, error) {
	return lockWallet(path)
}

func unlockWallet(f *os.File) {
	if f == nil {
		return
	}
	_ = f.Close()
}
