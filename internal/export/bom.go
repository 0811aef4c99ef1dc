package export

import (
	"fmt"

	"github.com/piwi3910/JigCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	bomPanelsSheet   = "Panels"
	bomHardwareSheet = "Hardware"
	bomStatsSheet    = "Statistics"
)

// ExportBOM writes an XLSX workbook with the panel schedule, the
// hardware shopping list, and the sheet statistics. pogoCount is the
// number of probed test points, one pogo pin each.
func ExportBOM(path string, sheet *model.LayoutSheet, hw model.HardwareSpec, pogoCount int) error {
	if len(sheet.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), bomPanelsSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}
	if err := setRow(f, bomPanelsSheet, 1, "Panel", "Width (mm)", "Height (mm)", "Area (mm2)", "Holes"); err != nil {
		return err
	}
	for i, p := range sheet.Panels {
		b := p.Outline.BoundingBox()
		if err := setRow(f, bomPanelsSheet, i+2, p.Name, b.Width(), b.Height(), p.Outline.Area(), len(p.Outline.Holes)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(bomHardwareSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}
	if err := setRow(f, bomHardwareSheet, 1, "Item", "Specification", "Quantity"); err != nil {
		return err
	}
	for i, line := range model.FixtureBOM(hw, pogoCount) {
		if err := setRow(f, bomHardwareSheet, i+2, line.Item, line.Spec, line.Quantity); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(bomStatsSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}
	stats := model.SheetStats(sheet)
	statRows := []struct {
		label string
		value interface{}
	}{
		{"Panels", stats.PanelCount},
		{"Interior cuts", stats.HoleCount},
		{"Sheet width (mm)", stats.SheetWidth},
		{"Sheet height (mm)", stats.SheetHeight},
		{"Panel area (mm2)", stats.PanelArea},
		{"Sheet area (mm2)", stats.SheetArea},
		{"Utilization (%)", stats.Utilization},
		{"Cut length (mm)", stats.CutLengthMM},
	}
	for i, row := range statRows {
		if err := setRow(f, bomStatsSheet, i+1, row.label, row.value); err != nil {
			return err
		}
	}

	for _, name := range []string{bomPanelsSheet, bomHardwareSheet, bomStatsSheet} {
		if err := f.SetColWidth(name, "A", "A", 28); err != nil {
			return err
		}
		if err := f.SetColWidth(name, "B", "E", 16); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
