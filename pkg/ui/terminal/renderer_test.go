package terminal

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/commands/pack"
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestRenderPackResult(t *testing.T) {
	plainColors(t)
	var buf bytes.Buffer
	r, err := New(&buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&pack.Result{
		Compression: "zstd",
		Templates: []pack.TemplateResult{{
			Dir: "/work/a", Name: "a", Version: "0.1.0", Archive: "a-0.1.0.zip",
			Packages: []string{"@local/util:1.0.0"}, Files: 2, Dirs: 0, Bytes: 10, Size: 8,
		}},
	}))

	out := buf.String()
	assert.Contains(t, out, "1 archive written (zstd)")
	assert.Contains(t, out, "a 0.1.0")
	assert.Contains(t, out, "a-0.1.0.zip")
	assert.Contains(t, out, "    @local/util:1.0.0")
}

func TestRenderErrorWithDetails(t *testing.T) {
	plainColors(t)
	var buf bytes.Buffer
	r, _ := New(&buf)

	err := errors.New(errors.ErrNotFound, "no templates").WithDetail(errors.DetailPath, "/work")
	require.NoError(t, r.RenderError(err))

	out := buf.String()
	assert.Contains(t, out, "[NOT_FOUND] no templates")
	assert.Contains(t, out, "path: /work")
}

func TestRenderUnknownResult(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderResult(42))
	assert.Equal(t, "42\n", buf.String())
}
