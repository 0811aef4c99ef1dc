package importer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// ─── S-Expression Parser Tests ─────────────────────────────

func TestParseSexp_Nested(t *testing.T) {
	src := `(kicad_pcb (version 20221018) (general (thickness 1.6)))`
	nodes, err := parseSexp(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(nodes))
	}

	root := nodes[0]
	if root.key() != "kicad_pcb" {
		t.Errorf("expected key kicad_pcb, got %q", root.key())
	}
	if got := root.child("version").str(1); got != "20221018" {
		t.Errorf("expected version 20221018, got %q", got)
	}
	thickness, err := root.child("general").child("thickness").float(1)
	if err != nil {
		t.Fatalf("unexpected error reading thickness: %v", err)
	}
	if thickness != 1.6 {
		t.Errorf("expected thickness 1.6, got %f", thickness)
	}
}

func TestParseSexp_QuotedStrings(t *testing.T) {
	src := `(title "rev \"B\" board") (layers "F.Cu" B.Cu)`
	nodes, err := parseSexp(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(nodes))
	}

	if got := nodes[0].str(1); got != `rev "B" board` {
		t.Errorf("expected escaped quotes to survive, got %q", got)
	}

	// Quoted and bare atoms read back identically.
	atoms := nodes[1].atoms()
	if len(atoms) != 2 || atoms[0] != "F.Cu" || atoms[1] != "B.Cu" {
		t.Errorf("expected [F.Cu B.Cu], got %v", atoms)
	}
}

func TestParseSexp_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated list", "(kicad_pcb (version 1)"},
		{"unbalanced close", "foo)"},
		{"unterminated string", `(title "no end`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSexp(strings.NewReader(tt.src)); err == nil {
				t.Errorf("expected parse error for %q", tt.src)
			}
		})
	}
}

func TestSexpNode_Navigation(t *testing.T) {
	src := `(footprint "TestPoint:TP"
	  (at 30 20 90)
	  (pad "1" smd circle (at 0 0) (size 1.5 1.5) (layers "F.Cu" "F.Mask"))
	  (pad "2" smd circle (at 2 0) (size 1.5 1.5) (layers "F.Cu")))`
	nodes, err := parseSexp(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fp := nodes[0]

	pads := fp.children("pad")
	if len(pads) != 2 {
		t.Fatalf("expected 2 pads, got %d", len(pads))
	}
	if pads[0].str(1) != "1" || pads[1].str(1) != "2" {
		t.Errorf("expected pads in file order, got %q %q", pads[0].str(1), pads[1].str(1))
	}
	if pads[0].str(2) != "smd" {
		t.Errorf("expected pad type smd, got %q", pads[0].str(2))
	}
	if fp.child("missing") != nil {
		t.Error("expected nil for a missing child")
	}

	layers := pads[0].child("layers").atoms()
	if len(layers) != 2 || layers[0] != "F.Cu" || layers[1] != "F.Mask" {
		t.Errorf("expected [F.Cu F.Mask], got %v", layers)
	}
}

func TestSexpNode_Floats(t *testing.T) {
	src := `(at 12.5 abc)`
	nodes, err := parseSexp(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	at := nodes[0]

	v, err := at.float(1)
	if err != nil || v != 12.5 {
		t.Errorf("expected 12.5, got %f (err %v)", v, err)
	}
	if _, err := at.float(2); err == nil {
		t.Error("expected error for non-numeric field")
	}
	if _, err := at.float(3); err == nil {
		t.Error("expected error for missing field")
	}
	if got := at.floatOr(3, 7); got != 7 {
		t.Errorf("expected default 7, got %f", got)
	}
}

// ─── layerMatch Tests ──────────────────────────────────────

func TestLayerMatch(t *testing.T) {
	tests := []struct {
		set   []string
		layer string
		want  bool
	}{
		{[]string{"F.Cu", "F.Mask"}, "F.Cu", true},
		{[]string{"F.Cu", "F.Mask"}, "B.Cu", false},
		{[]string{"*.Cu", "*.Mask"}, "F.Cu", true},
		{[]string{"*.Cu", "*.Mask"}, "B.Cu", true},
		{[]string{"*.Cu"}, "In1.Cu", true},
		{[]string{"*.Cu"}, "F.Paste", false},
		{[]string{"Eco2.User"}, "Eco2.User", true},
		{nil, "F.Cu", false},
	}

	for _, tt := range tests {
		if got := layerMatch(tt.set, tt.layer); got != tt.want {
			t.Errorf("layerMatch(%v, %q): expected %v, got %v", tt.set, tt.layer, tt.want, got)
		}
	}
}

// ─── KiCad Board Import Tests ──────────────────────────────

const sampleBoard = `(kicad_pcb (version 20221018) (generator pcbnew)
  (general (thickness 1.6))
  (layers (0 "F.Cu" signal) (31 "B.Cu" signal))
  (gr_line (start 20 10) (end 120 10) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 120 10) (end 120 60) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 120 60) (end 20 60) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 20 60) (end 20 10) (layer "Edge.Cuts") (width 0.1))
  (footprint "TestPoint:TestPoint_Pad_D1.5mm" (layer "F.Cu")
    (at 30 20)
    (pad "1" smd circle (at 0 0) (size 1.5 1.5) (layers "F.Cu" "F.Mask")))
  (footprint "Resistor_SMD:R_0603" (layer "F.Cu")
    (at 40 25)
    (pad "1" smd roundrect (at -0.825 0) (size 0.8 0.95) (layers "F.Cu" "F.Paste" "F.Mask"))
    (pad "2" smd roundrect (at 0.825 0) (size 0.8 0.95) (layers "F.Cu" "F.Paste" "F.Mask")))
  (footprint "Connector:Conn_01x02" (layer "F.Cu")
    (at 50 40)
    (pad "1" thru_hole circle (at 0 0) (size 1.7 1.7) (drill 1) (layers "*.Cu" "*.Mask")))
  (footprint "TestPoint:TestPoint_Pad_D1.0mm" (layer "B.Cu")
    (at 60 30)
    (pad "1" smd circle (at 0 0) (size 1 1) (layers "B.Cu" "B.Mask")))
  (footprint "TestPoint:TestPoint_Pad_D1.5mm" (layer "F.Cu")
    (at 70 20)
    (pad "1" smd circle (at 0 0) (size 1.5 1.5) (layers "F.Cu" "Eco1.User")))
  (footprint "TestPoint:TestPoint_THTPad_D2.0mm" (layer "F.Cu")
    (at 80 50)
    (pad "1" thru_hole circle (at 0 0) (size 2 2) (drill 1.3) (layers "*.Cu" "*.Mask" "Eco2.User")))
  (segment (start 30 20) (end 40 20) (width 0.25) (layer "F.Cu") (net 1))
  (segment (start 30 20) (end 30 28) (width 0.25) (layer "B.Cu") (net 1))
  (via (at 30 28) (size 0.8) (drill 0.4) (layers "F.Cu" "B.Cu") (net 1))
)`

func TestImportKiCadFrom_BoardOutline(t *testing.T) {
	result := ImportKiCadFrom(strings.NewReader(sampleBoard), KiCadOptions{})

	if err := result.Err(); err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
	if !result.HasBoard() {
		t.Fatal("expected a board outline")
	}
	if result.Board.Width != 100 {
		t.Errorf("expected width 100, got %f", result.Board.Width)
	}
	if result.Board.Height != 50 {
		t.Errorf("expected height 50, got %f", result.Board.Height)
	}
	if result.Board.Origin.X != 20 || result.Board.Origin.Y != 10 {
		t.Errorf("expected origin (20, 10), got %v", result.Board.Origin)
	}
	if len(result.Board.Outline.Outer) != 4 {
		t.Errorf("expected 4 outline vertices, got %d", len(result.Board.Outline.Outer))
	}
}

func TestImportKiCadFrom_TestPointRules(t *testing.T) {
	result := ImportKiCadFrom(strings.NewReader(sampleBoard), KiCadOptions{})

	want := []model.TestPoint{
		{Position: geometry.Pt(30, 20), Side: model.SideTop},    // bare SMD pad
		{Position: geometry.Pt(60, 30), Side: model.SideBottom}, // bare SMD pad, back face
		{Position: geometry.Pt(80, 50), Side: model.SideTop},    // forced through-hole loop
		{Position: geometry.Pt(80, 50), Side: model.SideBottom},
	}

	if len(result.Points) != len(want) {
		t.Fatalf("expected %d points, got %d: %+v", len(want), len(result.Points), result.Points)
	}
	for i, w := range want {
		got := result.Points[i]
		if math.Abs(got.Position.X-w.Position.X) > 1e-9 ||
			math.Abs(got.Position.Y-w.Position.Y) > 1e-9 {
			t.Errorf("point %d: expected %v, got %v", i, w.Position, got.Position)
		}
		if got.Side != w.Side {
			t.Errorf("point %d: expected side %v, got %v", i, w.Side, got.Side)
		}
	}
}

func TestImportKiCadFrom_RotatedFootprint(t *testing.T) {
	src := `(kicad_pcb
  (footprint "TestPoint:TP" (layer "F.Cu")
    (at 50 30 90)
    (pad "1" smd rect (at -0.8 0) (size 1 1) (layers "F.Cu"))))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if len(result.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(result.Points))
	}
	got := result.Points[0].Position
	if math.Abs(got.X-50) > 1e-9 || math.Abs(got.Y-30.8) > 1e-9 {
		t.Errorf("expected rotated pad at (50, 30.8), got %v", got)
	}
}

func TestImportKiCadFrom_ModuleSpelling(t *testing.T) {
	// v5 files spell footprints "module" and leave layer names unquoted.
	src := `(kicad_pcb (version 4)
  (gr_rect (start 20 10) (end 120 60) (layer Edge.Cuts) (width 0.1))
  (module TestPoint:TP (layer F.Cu)
    (at 35 25)
    (pad 1 smd circle (at 0 0) (size 1.5 1.5) (layers F.Cu F.Mask))))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if !result.HasBoard() {
		t.Fatal("expected a board outline from gr_rect")
	}
	if result.Board.Width != 100 || result.Board.Height != 50 {
		t.Errorf("expected 100x50 board, got %fx%f", result.Board.Width, result.Board.Height)
	}
	if len(result.Points) != 1 {
		t.Fatalf("expected 1 point from module footprint, got %d", len(result.Points))
	}
	if result.Points[0].Position.X != 35 {
		t.Errorf("expected x 35, got %f", result.Points[0].Position.X)
	}
}

func TestImportKiCadFrom_ArcOutline(t *testing.T) {
	// The right edge bows out to x=125 through a three-point arc.
	src := `(kicad_pcb
  (gr_line (start 20 10) (end 120 10) (layer "Edge.Cuts") (width 0.1))
  (gr_arc (start 120 10) (mid 125 35) (end 120 60) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 120 60) (end 20 60) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 20 60) (end 20 10) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if !result.HasBoard() {
		t.Fatalf("expected a board outline (warnings: %v)", result.Warnings)
	}
	if math.Abs(result.Board.Width-105) > 1e-6 {
		t.Errorf("expected width 105 including the arc bulge, got %f", result.Board.Width)
	}
	if result.Board.Height != 50 {
		t.Errorf("expected height 50, got %f", result.Board.Height)
	}
}

func TestImportKiCadFrom_CircularCutout(t *testing.T) {
	src := `(kicad_pcb
  (gr_rect (start 20 10) (end 120 60) (layer "Edge.Cuts") (width 0.1))
  (gr_circle (center 70 35) (end 75 35) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if !result.HasBoard() {
		t.Fatalf("expected a board outline (warnings: %v)", result.Warnings)
	}
	if len(result.Board.Outline.Holes) != 1 {
		t.Fatalf("expected 1 cutout, got %d", len(result.Board.Outline.Holes))
	}

	bb := result.Board.Outline.Holes[0].BoundingBox()
	if math.Abs(bb.MinX-65) > 1e-9 || math.Abs(bb.MaxX-75) > 1e-9 ||
		math.Abs(bb.MinY-30) > 1e-9 || math.Abs(bb.MaxY-40) > 1e-9 {
		t.Errorf("expected cutout spanning 65..75 x 30..40, got %+v", bb)
	}
	if result.Board.Outline.Holes[0].SignedArea() >= 0 {
		t.Error("cutouts wind clockwise")
	}
}

func TestImportKiCadFrom_PolyOutline(t *testing.T) {
	src := `(kicad_pcb
  (gr_poly (pts (xy 0 0) (xy 80 0) (xy 80 40) (xy 0 40)) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if !result.HasBoard() {
		t.Fatalf("expected a board outline (warnings: %v)", result.Warnings)
	}
	if result.Board.Width != 80 || result.Board.Height != 40 {
		t.Errorf("expected 80x40 board, got %fx%f", result.Board.Width, result.Board.Height)
	}
}

func TestImportKiCadFrom_StrayLoopWarning(t *testing.T) {
	src := `(kicad_pcb
  (gr_rect (start 20 10) (end 120 60) (layer "Edge.Cuts") (width 0.1))
  (gr_rect (start 130 10) (end 140 20) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if !result.HasBoard() {
		t.Fatal("expected the larger loop to become the board outline")
	}
	if result.Board.Width != 100 {
		t.Errorf("expected width 100, got %f", result.Board.Width)
	}
	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "outside the board outline") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Errorf("expected stray loop warning, got: %v", result.Warnings)
	}
}

func TestImportKiCadFrom_OpenOutlineWarning(t *testing.T) {
	src := `(kicad_pcb
  (gr_line (start 20 10) (end 120 10) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 120 10) (end 120 60) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if result.HasBoard() {
		t.Error("expected no board from an open outline")
	}
	if err := result.Err(); err != nil {
		t.Errorf("open outline should warn, not fail: %v", err)
	}
	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "does not form a closed loop") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Errorf("expected open outline warning, got: %v", result.Warnings)
	}
}

func TestImportKiCadFrom_MissingOutlineWarning(t *testing.T) {
	src := `(kicad_pcb
  (footprint "TestPoint:TP" (layer "F.Cu")
    (at 30 20)
    (pad "1" smd circle (at 0 0) (size 1.5 1.5) (layers "F.Cu"))))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if result.HasBoard() {
		t.Error("expected no board outline")
	}
	if len(result.Points) != 1 {
		t.Errorf("expected the test point to survive, got %d points", len(result.Points))
	}
	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "No Edge.Cuts outline") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Errorf("expected missing outline warning, got: %v", result.Warnings)
	}
}

func TestImportKiCadFrom_SelfIntersectingOutlineDemoted(t *testing.T) {
	// A bowtie chains into a closed loop that fails validation. The
	// import degrades to point-only rather than failing outright.
	src := `(kicad_pcb
  (gr_line (start 0 0) (end 10 10) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 10 10) (end 10 0) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 10 0) (end 0 10) (layer "Edge.Cuts") (width 0.1))
  (gr_line (start 0 10) (end 0 0) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	if result.HasBoard() {
		t.Error("expected no board from a self-intersecting outline")
	}
	if err := result.Err(); err != nil {
		t.Errorf("broken outline should warn, not fail: %v", err)
	}
	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "not usable") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Errorf("expected unusable outline warning, got: %v", result.Warnings)
	}
}

func TestImportKiCadFrom_CopperSilhouette(t *testing.T) {
	result := ImportKiCadFrom(strings.NewReader(sampleBoard), KiCadOptions{})

	if len(result.Copper) != 1 {
		t.Fatalf("expected 1 front copper capsule, got %d", len(result.Copper))
	}
	bb := result.Copper[0].Outer.BoundingBox()
	if math.Abs(bb.MinX-29.875) > 1e-9 || math.Abs(bb.MaxX-40.125) > 1e-9 {
		t.Errorf("expected capsule spanning 29.875..40.125 in x, got %+v", bb)
	}
	if math.Abs(bb.MinY-19.875) > 1e-9 || math.Abs(bb.MaxY-20.125) > 1e-9 {
		t.Errorf("expected capsule spanning 19.875..20.125 in y, got %+v", bb)
	}

	back := ImportKiCadFrom(strings.NewReader(sampleBoard), KiCadOptions{CopperLayer: "B.Cu"})
	if len(back.Copper) != 1 {
		t.Fatalf("expected  1 back copper capsule, got %d", len(back.Copper))
	}
	backBB := back.Copper[0].Outer.BoundingBox()
	if math.Abs(backBB.MaxY-28.125) > 1e-9 {
		t.Errorf("expected the vertical back track, got %+v", backBB)
	}
}

func TestImportKiCadFrom_OverhangWarning(t *testing.T) {
	src := `(kicad_pcb
  (gr_rect (start 20 10) (end 120 60) (layer "Edge.Cuts") (width 0.1))
  (footprint "Connector:EdgeMount" (layer "F.Cu")
    (at 130 30)
    (pad "1" smd rect (at 0 0) (size 4 4) (layers "F.Cu" "F.Paste"))))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "overhang the board outline by up to 12.0 mm") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Errorf("expected overhang warning, got: %v", result.Warnings)
	}
	if err := result.Err(); err != nil {
		t.Errorf("overhang must not fail the import: %v", err)
	}
}

func TestImportKiCadFrom_NoTestPointsWarning(t *testing.T) {
	src := `(kicad_pcb
  (gr_rect (start 0 0) (end 50 30) (layer "Edge.Cuts") (width 0.1)))`
	result := ImportKiCadFrom(strings.NewReader(src), KiCadOptions{})

	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "No test points found") && strings.Contains(w, "Eco2.User") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Errorf("expected no-test-points warning naming the force layer, got: %v", result.Warnings)
	}
}

func TestImportKiCadFrom_NotABoard(t *testing.T) {
	result := ImportKiCadFrom(strings.NewReader("(schematic (version 1))"), KiCadOptions{})

	if len(result.Errors) == 0 {
		t.Fatal("expected error for a non-board file")
	}
	if !strings.Contains(result.Errors[0], "Not a KiCad board") {
		t.Errorf("expected not-a-board error, got: %s", result.Errors[0])
	}
}

func TestImportKiCadFrom_ParseError(t *testing.T) {
	result := ImportKiCadFrom(strings.NewReader("(kicad_pcb (version"), KiCadOptions{})

	if len(result.Errors) == 0 {
		t.Fatal("expected error for a truncated file")
	}
	if !strings.Contains(result.Errors[0], "Cannot parse board file") {
		t.Errorf("expected parse error, got: %s", result.Errors[0])
	}
}

func TestImportKiCad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.kicad_pcb")
	if err := os.WriteFile(path, []byte(sampleBoard), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportKiCad(path, KiCadOptions{})
	if !result.HasBoard() {
		t.Error("expected a board outline")
	}
	if len(result.Points) != 4 {
		t.Errorf("expected 4 points, got %d", len(result.Points))
	}

	missing := ImportKiCad(filepath.Join(dir, "gone.kicad_pcb"), KiCadOptions{})
	if len(missing.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── Arc Tessellation Tests ────────────────────────────────

func TestEdgeArcPoints_CentreAngleForm(t *testing.T) {
	// v5 dialect: start is the centre, end the arc start, angle the sweep.
	src := `(gr_arc (start 0 0) (end 10 0) (angle 90) (layer Edge.Cuts) (width 0.1))`
	nodes, err := parseSexp(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	pts := edgeArcPoints(nodes[0])
	if len(pts) != 33 {
		t.Fatalf("expected 33 points, got %d", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.X-10) > 1e-9 || math.Abs(first.Y) > 1e-9 {
		t.Errorf("expected arc to start at (10, 0), got %v", first)
	}
	if math.Abs(last.X) > 1e-9 || math.Abs(last.Y-10) > 1e-9 {
		t.Errorf("expected arc to end at (0, 10), got %v", last)
	}
}

func TestArcThroughPoints_PassesThroughMid(t *testing.T) {
	s := geometry.Pt(120, 10)
	m := geometry.Pt(125, 35)
	e := geometry.Pt(120, 60)

	pts := arcThroughPoints(s, m, e, 32)
	if len(pts) != 33 {
		t.Fatalf("expected 33 points, got %d", len(pts))
	}
	if math.Abs(pts[16].X-125) > 1e-9 || math.Abs(pts[16].Y-35) > 1e-9 {
		t.Errorf("expected the arc to pass through the mid point, got %v", pts[16])
	}
	// All points on the circumcircle: centre (60, 35), radius 65.
	for i, p := range pts {
		r := math.Hypot(p.X-60, p.Y-35)
		if math.Abs(r-65) > 1e-9 {
			t.Errorf("point %d off the circle: radius %f", i, r)
		}
	}
}

func TestArcThroughPoints_SweepsTheLongWay(t *testing.T) {
	// Mid on the far side forces the 270 degree sweep.
	s := geometry.Pt(10, 0)
	m := geometry.Pt(0, -10)
	e := geometry.Pt(0, 10)

	pts := arcThroughPoints(s, m, e, 6)
	if len(pts) != 7 {
		t.Fatalf("expected 7 points, got %d", len(pts))
	}
	if math.Abs(pts[2].X) > 1e-9 || math.Abs(pts[2].Y+10) > 1e-9 {
		t.Errorf("expected the sweep to pass through (0, -10), got %v", pts[2])
	}
	if math.Abs(pts[6].X) > 1e-9 || math.Abs(pts[6].Y-10) > 1e-9 {
		t.Errorf("expected the sweep to end at (0, 10), got %v", pts[6])
	}
}

func TestArcThroughPoints_Collinear(t *testing.T) {
	pts := arcThroughPoints(geometry.Pt(0, 0), geometry.Pt(5, 0), geometry.Pt(10, 0), 32)
	if len(pts) != 2 {
		t.Fatalf("expected collinear points to degrade to a line, got %d points", len(pts))
	}
}
