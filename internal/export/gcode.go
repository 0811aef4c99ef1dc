package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// LaserJob produces G-code for a packed sheet using a post-processor
// profile. There is no Z axis: the beam switches on at the start of
// each ring and off at the end.
type LaserJob struct {
	Settings model.LaserSettings
	profile  model.LaserProfile
}

func NewLaserJob(settings model.LaserSettings) *LaserJob {
	return &LaserJob{
		Settings: settings,
		profile:  model.GetLaserProfile(settings.LaserProfile),
	}
}

// ExportGCode writes the laser cut program for the packed sheet.
func ExportGCode(path string, sheet *model.LayoutSheet, settings model.LaserSettings) error {
	if len(sheet.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}
	code := NewLaserJob(settings).Generate(sheet)
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write G-code file: %w", err)
	}
	return nil
}

// Generate produces the full cut program for one sheet. Interior
// cutouts are traced before the outline so every plate stays attached
// to the blank until its final cut.
func (j *LaserJob) Generate(sheet *model.LayoutSheet) string {
	var b strings.Builder

	j.writeHeader(&b, sheet)

	for i, panel := range sheet.Panels {
		j.writePanel(&b, panel, i+1)
	}

	j.writeFooter(&b)
	return b.String()
}

func (j *LaserJob) writeHeader(b *strings.Builder, sheet *model.LayoutSheet) {
	stats := model.SheetStats(sheet)

	b.WriteString(j.comment(fmt.Sprintf("JigCut laser job - %d panels on %.0f x %.0f mm",
		stats.PanelCount, stats.SheetWidth, stats.SheetHeight)))
	b.WriteString(j.comment(fmt.Sprintf("Cut length: %.2f m, est. %.1f min",
		stats.CutLengthM,
		model.EstimateCutTime(stats.CutLengthMM, j.Settings.FeedRate, j.Settings.Passes))))
	b.WriteString(j.comment(fmt.Sprintf("Feed: %.0f mm/min, Power: S%d, Passes: %d",
		j.Settings.FeedRate, j.Settings.Power, j.Settings.Passes)))
	b.WriteString(j.comment(fmt.Sprintf("Profile: %s", j.profile.Name)))
	b.WriteString("\n")

	// Write startup codes
	for _, code := range j.profile.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString("\n")
}

func (j *LaserJob) writeFooter(b *strings.Builder) {
	b.WriteString(j.comment("=== Job complete ==="))

	// Write end codes
	for _, code := range j.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

func (j *LaserJob) writePanel(b *strings.Builder, panel model.Panel, num int) {
	placed := panel.Placed()

	b.WriteString(j.comment(fmt.Sprintf("--- Panel %d: %s (%d holes) ---",
		num, panel.Name, len(placed.Holes))))

	// Interior cuts first
	for _, h := range placed.Holes {
		j.writeRing(b, h)
	}
	j.writeRing(b, placed.Outer)

	b.WriteString("\n")
}

// writeRing rapids to the ring start with the beam off, switches it
// on, traces the loop once per pass, and switches it off again.
func (j *LaserJob) writeRing(b *strings.Builder, ring geometry.Ring) {
	if len(ring) < 2 {
		return
	}
	p := j.profile
	start := ring[0]

	passes := j.Settings.Passes
	if passes < 1 {
		passes = 1
	}

	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, j.format(start.X), j.format(start.Y)))
	b.WriteString(fmt.Sprintf(p.LaserStart+"\n", j.Settings.Power))

	for pass := 0; pass < passes; pass++ {
		for i := 1; i < len(ring); i++ {
			if pass == 0 && i == 1 {
				b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove,
					j.format(ring[i].X), j.format(ring[i].Y), j.format(j.Settings.FeedRate)))
			} else {
				b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove,
					j.format(ring[i].X), j.format(ring[i].Y)))
			}
		}
		// Close the loop back to the first point
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, j.format(start.X), j.format(start.Y)))
	}

	b.WriteString(p.LaserStop + "\n")
}

// comment wraps text in the profile's comment syntax.
func (j *LaserJob) comment(text string) string {
	return j.profile.CommentPrefix + " " + text + j.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (j *LaserJob) format(v float64) string {
	format := fmt.Sprintf("%%.%df", j.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}
