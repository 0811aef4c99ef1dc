// Package ui provides the JigCut preview window: a read-only viewer
// for the packed layout sheet and the probe validation overlay.
//
// This file defines a custom compact Fyne theme for a dense layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// JigCutTheme wraps the default Fyne theme with compact sizing
// overrides so the preview stays information-dense.
type JigCutTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewJigCutTheme creates a new JigCutTheme with the system default variant.
func NewJigCutTheme() *JigCutTheme {
	return &JigCutTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // system default
	}
}

// NewJigCutThemeWithVariant creates a JigCutTheme with a specific
// light/dark variant.
func NewJigCutThemeWithVariant(variant fyne.ThemeVariant) *JigCutTheme {
	return &JigCutTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// Color delegates to the base theme with the stored variant.
func (t *JigCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *JigCutTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *JigCutTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *JigCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
