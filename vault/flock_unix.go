//go:build unix

package vault

import (
	"fmt"
	"os"
	"syscall"
)

const flockSupported = true

// openWalletLock opens (creating if needed) the lock file guarding wallet sends.
func openWalletLock(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("vault: open wallet lock %s: %w", path, err)
	}
	return f, nil
}

// lockWallet blocks until this process owns the wallet lock.
func lockWallet(path string) (*os.File, error) {
	f, err := openWalletLock(path)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("vault: lock wallet: %w", err)
	}
	return f, nil
}

// tryLockWallet takes the wallet lock without waiting. ErrWalletBusy means
// another process is sending from the same wallet.
func tryLockWallet(path string) (*os.File, error) {
	f, err := openWalletLock(path)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, ErrWalletBusy
		}
		return nil, fmt.Errorf("vault: lock wallet: %w", err)
	}
	return f, nil
}

func unlockWallet(f *os.File) {
	if f == nil {
		return
	}
	_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	_ = f.Close()
}
