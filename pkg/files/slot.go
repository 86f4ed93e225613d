package files

import (
	"github.com/arthur-debert/tmplfs/pkg/internal/hashutil"
)

// slotCell lazily derives a value from a file's raw content.
//
// Within one access epoch a cell reads storage at most once. Across epochs it
// re-reads, but only decodes again when the fingerprint of the raw bytes (or
// of the read failure) changed. Failures are cached like values.
type slotCell[T any] struct {
	value       T
	err         error
	filled      bool
	fingerprint hashutil.Fingerprint
	accessed    bool
}

// getOrInit returns the cell's value, loading and decoding as needed. decode
// receives the previous successful value, if there is one.
func (c *slotCell[T]) getOrInit(
	load func() ([]byte, error),
	decode func(data []byte, prev T, hasPrev bool) (T, error),
) (T, error) {
	accessed := c.accessed
	c.accessed = true
	if accessed && c.filled {
		return c.value, c.err
	}

	data, loadErr := load()
	var fp hashutil.Fingerprint
	if loadErr != nil {
		fp = hashutil.FingerprintFailure(loadErr)
	} else {
		fp = hashutil.FingerprintBytes(data)
	}

	previous := c.fingerprint
	c.fingerprint = fp
	if previous == fp && c.filled {
		return c.value, c.err
	}

	prev, hasPrev := c.value, c.filled && c.err == nil

	var value T
	err := loadErr
	if err == nil {
		value, err = decode(data, prev, hasPrev)
	}

	c.value, c.err, c.filled = value, err, true
	return value, err
}

// reset starts a new access epoch for the cell.
func (c *slotCell[T]) reset() {
	c.accessed = false
}
