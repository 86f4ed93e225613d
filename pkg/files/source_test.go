package files

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReplace(t *testing.T) {
	id := types.TemplateFile("main.typ")

	tests := []struct {
		name string
		old  string
		new  string
		want Edit
	}{
		{"middle", "hello world", "hello there world", Edit{Start: 6, End: 6, Replacement: "there "}},
		{"append", "abc", "abcdef", Edit{Start: 3, End: 3, Replacement: "def"}},
		{"delete prefix", "#import x\nbody", "body", Edit{Start: 0, End: 10, Replacement: ""}},
		{"full rewrite", "abc", "xyz", Edit{Start: 0, End: 3, Replacement: "xyz"}},
		{"multibyte boundary", "añb", "aéb", Edit{Start: 1, End: 3, Replacement: "é"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := NewSource(id, tt.old)
			next := first.Replace(tt.new)

			require.NotSame(t, first, next)
			assert.Equal(t, tt.new, next.Text())
			assert.Equal(t, tt.old, first.Text(), "predecessor is untouched")
			assert.Equal(t, 1, next.Revision())
			assert.Equal(t, id, next.ID())

			edit, ok := next.LastEdit()
			require.True(t, ok)
			assert.Equal(t, tt.want, edit)
			assert.Equal(t, tt.new, tt.old[:edit.Start]+edit.Replacement+tt.old[edit.End:])
		})
	}
}

func TestSourceReplaceIdentical(t *testing.T) {
	src := NewSource(types.TemplateFile("a.typ"), "same")
	assert.Same(t, src, src.Replace("same"))

	_, ok := src.LastEdit()
	assert.False(t, ok)
}

func TestDecodeUTF8StripsBOM(t *testing.T) {
	id := types.TemplateFile("a.typ")
	inputs := [][]byte{
		[]byte(""),
		[]byte("plain"),
		[]byte("ünïcode ✓"),
		append([]byte{0xef, 0xbb, 0xbf}, "already bom"...),
	}

	for _, in := range inputs {
		stripped := bytes.TrimPrefix(in, utf8BOM)

		plain, err := decodeUTF8(id, stripped)
		require.NoError(t, err)
		withBOM, err := decodeUTF8(id, append(append([]byte{}, utf8BOM...), stripped...))
		require.NoError(t, err)

		assert.Equal(t, plain, withBOM)
	}
}

func TestDecodeUTF8Invalid(t *testing.T) {
	_, err := decodeUTF8(types.TemplateFile("bin.dat"), []byte{0xff, 0xfe, 0x00})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidEncoding))
}

func TestIsFont(t *testing.T) {
	for _, name := range []string{"a.ttf", "b.OTF", "dir/c.TtC", "d.otc"} {
		assert.True(t, isFont(name), name)
	}
	for _, name := range []string{"ttf", "font.woff", "a.ttf.bak", "readme.md"} {
		assert.False(t, isFont(name), name)
	}
}
