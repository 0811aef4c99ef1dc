package model

import "github.com/piwi3910/JigCut/internal/geometry"

// CutStats summarizes a packed sheet for reports and G-code headers.
type CutStats struct {
	PanelCount  int     `json:"panel_count"`
	HoleCount   int     `json:"hole_count"`
	SheetWidth  float64 `json:"sheet_width"`   // mm
	SheetHeight float64 `json:"sheet_height"`  // mm
	PanelArea   float64 `json:"panel_area"`    // sq mm, holes subtracted
	SheetArea   float64 `json:"sheet_area"`    // sq mm, bounding box
	Utilization float64 `json:"utilization"`   // percent of the bbox that is material
	CutLengthMM float64 `json:"cut_length_mm"` // total beam path
	CutLengthM  float64 `json:"cut_length_m"`
}

func ringLength(r geometry.Ring) float64 {
	if len(r) < 2 {
		return 0
	}
	var total float64
	for i := range r {
		total += r[i].Distance(r[(i+1)%len(r)])
	}
	return total
}

// CutLength returns the total beam path for one panel: the outer ring
// plus every hole.
func CutLength(p Panel) float64 {
	total := ringLength(p.Outline.Outer)
	for _, h := range p.Outline.Holes {
		total += ringLength(h)
	}
	return total
}

// SheetStats computes the cut summary for a packed sheet.
func SheetStats(sheet *LayoutSheet) CutStats {
	stats := CutStats{
		PanelCount:  len(sheet.Panels),
		SheetWidth:  sheet.Bounds.Width(),
		SheetHeight: sheet.Bounds.Height(),
	}
	stats.SheetArea = stats.SheetWidth * stats.SheetHeight
	for _, p := range sheet.Panels {
		stats.HoleCount += len(p.Outline.Holes)
		stats.PanelArea += p.Outline.Area()
		stats.CutLengthMM += CutLength(p)
	}
	if stats.SheetArea > 0 {
		stats.Utilization = 100 * stats.PanelArea / stats.SheetArea
	}
	stats.CutLengthM = stats.CutLengthMM / 1000.0
	return stats
}

// EstimateCutTime returns an estimated machine time in minutes for the
// given beam path at the given feed rate. Travel moves are ignored;
// real jobs run a little longer.
func EstimateCutTime(lengthMM, feedRate float64, passes int) float64 {
	if feedRate <= 0 {
		return 0
	}
	if passes < 1 {
		passes = 1
	}
	return lengthMM * float64(passes) / feedRate
}
