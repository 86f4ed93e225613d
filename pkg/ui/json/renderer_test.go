package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/commands/inspect"
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(&buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&inspect.Result{
		Archive: "a.zip", Size: 12, Files: []string{"/main.typ"}, Packages: []string{}, Fonts: []string{},
	}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "a.zip", decoded["archive"])
	assert.Equal(t, []interface{}{"/main.typ"}, decoded["files"])
	assert.NotContains(t, decoded, "name")
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderError(errors.New(errors.ErrArchiveRead, "bad zip").WithDetail(errors.DetailPath, "a.zip")))

	var decoded ErrorObject
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ARCHIVE_READ", decoded.Code)
	assert.Equal(t, "[ARCHIVE_READ] bad zip", decoded.Error)
	assert.Equal(t, "a.zip", decoded.Details["path"])
}

func TestRenderPlainError(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderError(assert.AnError))
	assert.Contains(t, buf.String(), `"code": "UNKNOWN"`)
	assert.NotContains(t, buf.String(), "details")
}

func TestRenderMessage(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderMessage("done"))
	assert.Equal(t, "{\n  \"message\": \"done\"\n}\n", buf.String())
}
