package ui_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNamesRoundTrip(t *testing.T) {
	assert.Equal(t, []string{"auto", "term", "text", "json", "yaml"}, ui.Names())

	for _, name := range ui.Names() {
		f, err := ui.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
	assert.Equal(t, "unknown", ui.Format(42).String())
}

func TestParseFormatAliases(t *testing.T) {
	aliases := map[string]ui.Format{
		"":         ui.FormatAuto,
		"terminal": ui.FormatTerminal,
		"TERM":     ui.FormatTerminal,
		"plain":    ui.FormatText,
		"Json":     ui.FormatJSON,
		"yml":      ui.FormatYAML,
	}
	for input, want := range aliases {
		got, err := ui.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseFormatUnknown(t *testing.T) {
	_, err := ui.ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "unknown format: xml")
}

func TestDetectFormatHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
}

func TestDetectFormatNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
}
