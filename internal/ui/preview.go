package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/JigCut/internal/model"
	"github.com/piwi3910/JigCut/internal/ui/widgets"
)

// ShowPreview opens the preview window and blocks until it is closed.
// The sheet tab is always present; the probe overlay tab appears when a
// validation scene is supplied.
func ShowPreview(title string, sheet *model.LayoutSheet, scene *model.ValidationScene, laser model.LaserSettings, themePref string) {
	application := app.NewWithID("com.piwi3910.jigcut")
	application.Settings().SetTheme(themeForPref(themePref))

	window := application.NewWindow(title)

	tabs := container.NewAppTabs(
		container.NewTabItem("Sheet layout", widgets.RenderLayout(sheet, laser)),
	)
	if scene != nil {
		tabs.Append(container.NewTabItem("Probe overlay", widgets.RenderOverlay(scene)))
	}

	window.SetContent(tabs)
	window.Resize(fyne.NewSize(760, 560))
	window.CenterOnScreen()
	window.ShowAndRun()
}

// themeForPref maps the config theme names onto theme variants.
func themeForPref(pref string) fyne.Theme {
	switch pref {
	case "dark":
		return NewJigCutThemeWithVariant(theme.VariantDark)
	case "light":
		return NewJigCutThemeWithVariant(theme.VariantLight)
	}
	return NewJigCutTheme()
}
