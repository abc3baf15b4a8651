package styles

import (
	"slices"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_sorted_and_resolvable(t *testing.T) {
	names := ThemeNames()

	require.NotEmpty(t, names)
	assert.True(t, slices.IsSorted(names))
	assert.Contains(t, names, DefaultTheme)

	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, name)
	}
}

func TestGetPalette_unknown(t *testing.T) {
	_, ok := GetPalette("does-not-exist")
	assert.False(t, ok)
}

func TestSetTheme_updates_colors(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)

	assert.Equal(t, p.Primary, ColorPrimary)
	assert.Equal(t, p.Error, ColorError)
	assert.Equal(t, p, CurrentPalette)
}

func TestGlamourStyle_uses_palette(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })
	SetTheme(themes["tokyo-night"])

	cfg := GlamourStyle()

	require.NotNil(t, cfg.Heading.Color)
	assert.Equal(t, "#7aa2f7", *cfg.Heading.Color)
	require.NotNil(t, cfg.Strong.Color)
	assert.Equal(t, "#7dcfff", *cfg.Strong.Color)
	assert.Nil(t, cfg.Document.Margin)
}

func TestColorHexPtr_nil(t *testing.T) {
	assert.Nil(t, colorHexPtr(nil))
}

func TestRenderMarkdown_keeps_text(t *testing.T) {
	out, err := RenderMarkdown("## Issue\n\n**Maneka Gandhi v. Union of India**\n", 60)
	require.NoError(t, err)

	out = ansi.Strip(out)
	assert.Contains(t, out, "Issue")
	assert.Contains(t, out, "Maneka Gandhi v. Union of India")
}
