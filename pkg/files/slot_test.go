package files

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFile feeds a slotCell and counts loads and decodes.
type fakeFile struct {
	data    []byte
	err     error
	loads   int
	decodes int
	sawPrev []bool
}

func (f *fakeFile) get(c *slotCell[string]) (string, error) {
	return c.getOrInit(
		func() ([]byte, error) {
			f.loads++
			return f.data, f.err
		},
		func(data []byte, prev string, hasPrev bool) (string, error) {
			f.decodes++
			f.sawPrev = append(f.sawPrev, hasPrev)
			if hasPrev {
				return prev + "|" + string(data), nil
			}
			return string(data), nil
		},
	)
}

func TestSlotCellSamePassLoadsOnce(t *testing.T) {
	var c slotCell[string]
	f := &fakeFile{data: []byte("a")}

	v1, err := f.get(&c)
	require.NoError(t, err)
	v2, err := f.get(&c)
	require.NoError(t, err)

	assert.Equal(t, "a", v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, f.loads)
	assert.Equal(t, 1, f.decodes)
}

func TestSlotCellUnchangedAcrossPasses(t *testing.T) {
	var c slotCell[string]
	f := &fakeFile{data: []byte("a")}

	_, _ = f.get(&c)
	c.reset()
	v, err := f.get(&c)
	require.NoError(t, err)

	assert.Equal(t, "a", v)
	assert.Equal(t, 2, f.loads, "storage is checked every pass")
	assert.Equal(t, 1, f.decodes, "unchanged content is not decoded again")
}

func TestSlotCellChangedGetsPrevious(t *testing.T) {
	var c slotCell[string]
	f := &fakeFile{data: []byte("a")}

	_, _ = f.get(&c)
	c.reset()
	f.data = []byte("b")
	v, err := f.get(&c)
	require.NoError(t, err)

	assert.Equal(t, "a|b", v)
	assert.Equal(t, []bool{false, true}, f.sawPrev)
}

func TestSlotCellCachesFailures(t *testing.T) {
	var c slotCell[string]
	f := &fakeFile{err: fmt.Errorf("missing")}

	_, err1 := f.get(&c)
	_, err2 := f.get(&c)
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 1, f.loads)
	assert.Equal(t, 0, f.decodes)

	c.reset()
	_, err3 := f.get(&c)
	assert.Same(t, err1, err3, "identical failure across passes reuses the cached error")
	assert.Equal(t, 2, f.loads)
}

func TestSlotCellRecoversAfterFailure(t *testing.T) {
	var c slotCell[string]
	f := &fakeFile{err: fmt.Errorf("missing")}

	_, err := f.get(&c)
	require.Error(t, err)

	c.reset()
	f.err, f.data = nil, []byte("now here")
	v, err := f.get(&c)
	require.NoError(t, err)
	assert.Equal(t, "now here", v)
	assert.Equal(t, []bool{false}, f.sawPrev, "a failed value is never passed as previous")
}
