package pack

import (
	"testing"
	"time"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodRegistry(t *testing.T) {
	r := newMethodRegistry()

	assert.Equal(t, []string{MethodDeflate, MethodStore, MethodZstd}, r.List())

	err := r.Register(Method{Name: MethodStore, ID: zip.Store})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = r.Register(Method{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	require.NoError(t, r.Register(Method{Name: "stored-again", ID: zip.Store}))
	m, err := r.Get("stored-again")
	require.NoError(t, err)
	assert.Equal(t, zip.Store, m.ID)

	_, err = r.Get("lzma")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDosTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		time  time.Time
		date  uint16
		clock uint16
		err   bool
	}{
		{"epoch", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), 1<<5 | 1, 0, false},
		{"odd seconds round down", time.Date(2000, 2, 3, 4, 5, 7, 0, time.UTC), 20<<9 | 2<<5 | 3, 4<<11 | 5<<5 | 3, false},
		{"last year", time.Date(2107, 12, 31, 23, 59, 58, 0, time.UTC), 127<<9 | 12<<5 | 31, 23<<11 | 59<<5 | 29, false},
		{"converted to utc", time.Date(1980, 1, 1, 2, 0, 0, 0, time.FixedZone("x", 2*60*60)), 1<<5 | 1, 0, false},
		{"before epoch", time.Date(1979, 12, 31, 23, 59, 59, 0, time.UTC), 0, 0, true},
		{"after range", time.Date(2108, 1, 1, 0, 0, 0, 0, time.UTC), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock, err := dosTimestamp(tt.time)
			if tt.err {
				assert.True(t, errors.IsErrorCode(err, errors.ErrTimestampRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.date, date)
			assert.Equal(t, tt.clock, clock)
		})
	}
}
