package engine

import (
	"math"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// PanelOrder is the fixed generation order of the fixture's seventeen
// panels. The layout packer places them in exactly this order.
var PanelOrder = []string{
	"carrier_retention",
	"carrier_clearance",
	"head_base",
	"head_top",
	"head_side_left",
	"head_side_right",
	"base_side_left",
	"base_side_right",
	"base_front_support",
	"base_support",
	"base_back_support",
	"latch_left",
	"latch_right",
	"latch_support",
	"spacer_left",
	"spacer_right",
	"cable_retention",
}

// panelBuilder carries the solved run geometry through panel
// generation. All builders are pure: they read, never write.
type panelBuilder struct {
	n   *NormalizedInputs
	env *Envelope
	hw  model.HardwareSpec
}

// GeneratePanels builds every fixture panel in PanelOrder. Only the
// carriers and the two head plates see test-point and outline data;
// every other panel is a function of the hardware spec and the solved
// envelope alone.
func GeneratePanels(n *NormalizedInputs, env *Envelope, hw model.HardwareSpec) ([]model.Panel, error) {
	b := &panelBuilder{n: n, env: env, hw: hw}
	panels := make([]model.Panel, 0, len(PanelOrder))
	for _, name := range PanelOrder {
		poly, err := b.build(name)
		if err != nil {
			if _, ok := err.(*PanelError); ok {
				return nil, err
			}
			return nil, &PanelError{Name: name, Reason: err.Error()}
		}
		if err := poly.Validate(); err != nil {
			return nil, &PanelError{Name: name, Reason: err.Error()}
		}
		panels = append(panels, model.Panel{Name: name, Outline: poly})
	}
	return panels, nil
}

func (b *panelBuilder) build(name string) (geometry.Polygon, error) {
	switch name {
	case "carrier_retention":
		return b.carrier(b.hw.Border)
	case "carrier_clearance":
		// A negative border oversizes the cavity by half the beam width
		// so the clearance carrier drops over the components freely.
		return b.carrier(-b.hw.Kerf / 2)
	case "head_base":
		return b.headPlate(false)
	case "head_top":
		return b.headPlate(true)
	case "head_side_left", "head_side_right":
		return b.headSide()
	case "base_side_left", "base_side_right":
		return b.baseSide()
	case "base_front_support", "base_back_support":
		return b.rail(true)
	case "base_support":
		return b.rail(false)
	case "latch_left", "latch_right":
		return b.latch()
	case "latch_support":
		return b.latchSupport()
	case "spacer_left", "spacer_right":
		return b.spacer()
	case "cable_retention":
		return b.cableRetention()
	}
	return geometry.Polygon{}, &PanelError{Name: name, Reason: "unknown panel"}
}

// cutAll subtracts every hole from the panel in order.
func cutAll(panel geometry.Polygon, holes []geometry.Polygon) (geometry.Polygon, error) {
	var err error
	for _, h := range holes {
		panel, err = geometry.Difference(panel, h)
		if err != nil {
			return geometry.Polygon{}, err
		}
	}
	return panel, nil
}

// screwBore returns a screw shaft hole centred on c.
func (b *panelBuilder) screwBore(c geometry.Point2) geometry.Polygon {
	return geometry.CircleAt(c.X, c.Y, b.hw.ScrewDiameter/2, b.hw.Segments)
}

// pivotBore returns a pivot shaft hole centred on c.
func (b *panelBuilder) pivotBore(c geometry.Point2) geometry.Polygon {
	return geometry.CircleAt(c.X, c.Y, b.hw.PivotDiameter/2, b.hw.Segments)
}

// carrierScrewCenters returns the four index screw positions that
// locate a carrier on the support rails, centred in the margin around
// the board cavity.
func (b *panelBuilder) carrierScrewCenters() []geometry.Point2 {
	w := b.env.HeadX
	h := b.env.WorkY + 2*b.env.ActiveXOffset
	inset := b.env.ActiveXOffset / 2
	return []geometry.Point2{
		{X: inset, Y: inset},
		{X: w - inset, Y: inset},
		{X: inset, Y: h - inset},
		{X: w - inset, Y: h - inset},
	}
}

// clampScrewCenters returns the four hinge-end clamp screw positions
// shared by the head plates and the spacers.
func (b *panelBuilder) clampScrewCenters() []geometry.Point2 {
	xs := [2]float64{b.env.ActiveXOffset, b.env.HeadX - b.env.ActiveXOffset}
	ys := [2]float64{b.env.PivotSupportR, b.env.HingeYOffset - b.env.PivotSupportR}
	return []geometry.Point2{
		{X: xs[0], Y: ys[0]},
		{X: xs[1], Y: ys[0]},
		{X: xs[0], Y: ys[1]},
		{X: xs[1], Y: ys[1]},
	}
}

// cableScrewCenters returns the two cable-retention screw positions on
// the head top, centred on the back edge.
func (b *panelBuilder) cableScrewCenters() []geometry.Point2 {
	span := 3 * b.hw.NutCornerToCorner
	return []geometry.Point2{
		{X: b.env.HeadX/2 - span, Y: b.hw.NutCornerToCorner},
		{X: b.env.HeadX/2 + span, Y: b.hw.NutCornerToCorner},
	}
}

// railStations returns the front-back positions of the three support
// rails in the base side's frame (x=0 is the hinge end).
func (b *panelBuilder) railStations() [3]float64 {
	m := b.hw.MaterialThickness
	r := b.hw.NutCornerToCorner / 2
	return [3]float64{
		m + r,               // back, under the hinge posts
		b.env.BaseY / 2,     // middle, under the board
		b.env.BaseY - m - r, // front
	}
}

// pogoPattern returns the probe bores for both point sets in the head
// plates' frame. head_base and head_top both cut exactly this set, so
// the two plates that sandwich the pins can never drift apart.
func (b *panelBuilder) pogoPattern() []geometry.Polygon {
	bores := make([]geometry.Polygon, 0, len(b.n.Top)+len(b.n.Bottom))
	add := func(pts []geometry.Point2) {
		for _, p := range pts {
			bore := PogoHole(b.hw.PogoRadius, b.hw.Segments)
			bores = append(bores, geometry.Translate(bore, p.X+b.env.ActiveXOffset, p.Y+b.env.HingeYOffset))
		}
	}
	add(b.n.Top)
	add(b.n.Bottom)
	return bores
}

func (b *panelBuilder) carrier(border float64) (geometry.Polygon, error) {
	w := b.env.HeadX
	h := b.env.WorkY + 2*b.env.ActiveXOffset
	panel := geometry.Rectangle(w, h)

	cavity := geometry.Translate(b.n.Outline, b.env.ActiveXOffset, b.env.ActiveXOffset)
	sx := 1 - 2*border/b.env.WorkX
	sy := 1 - 2*border/b.env.WorkY
	cavity = geometry.Scale(cavity, sx, sy, cavity.BoundingBox().Center())

	holes := []geometry.Polygon{{Outer: cavity.Outer}}
	for _, c := range b.carrierScrewCenters() {
		holes = append(holes, b.screwBore(c))
	}
	return cutAll(panel, holes)
}

func (b *panelBuilder) headPlate(top bool) (geometry.Polygon, error) {
	w, h := b.env.HeadX, b.env.HeadY
	m := b.hw.MaterialThickness
	panel := geometry.Rectangle(w, h)

	holes := b.pogoPattern()

	// Side tab slots, a half material in from the long edges.
	spec := JointSpec{EdgeLength: h, FingerCount: FingerCountFor(h), PanelThickness: m, Kerf: b.hw.Kerf}
	slots, err := FingerSlots(spec, PhaseEven)
	if err != nil {
		return geometry.Polygon{}, err
	}
	for _, s := range slots {
		column := geometry.Rotate90(s)
		holes = append(holes,
			geometry.Translate(column, m/2+m, 0),
			geometry.Translate(column, w-m/2, 0))
	}

	for _, c := range b.clampScrewCenters() {
		holes = append(holes, b.screwBore(c))
	}
	if top {
		for _, c := range b.cableScrewCenters() {
			holes = append(holes, b.screwBore(c))
		}
	}
	return cutAll(panel, holes)
}

func (b *panelBuilder) headSide() (geometry.Polygon, error) {
	L := b.env.HeadY
	bodyH := b.env.HeadZ
	m := b.hw.MaterialThickness

	spec := JointSpec{EdgeLength: L, FingerCount: FingerCountFor(L), PanelThickness: m, Kerf: b.hw.Kerf}
	spans, err := tabSpans(spec, PhaseEven)
	if err != nil {
		return geometry.Polygon{}, err
	}

	ring := assembleRing(
		edgeRun(tabRun(spans, L, m), geometry.Transform2{}),
		edgeRun(straightRun(bodyH), geometry.Transform2{Quarter: 1, Offset: geometry.Pt(L, 0)}),
		edgeRun(tabRun(spans, L, m), geometry.Transform2{Quarter: 2, Offset: geometry.Pt(L, bodyH)}),
		edgeRun(straightRun(bodyH), geometry.Transform2{Quarter: 3, Offset: geometry.Pt(0, bodyH)}),
	)

	return cutAll(geometry.Polygon{Outer: ring}, []geometry.Polygon{
		b.pivotBore(geometry.Pt(b.env.PivotSupportR, bodyH/2)),
	})
}

func (b *panelBuilder) baseSide() (geometry.Polygon, error) {
	w := b.env.BaseY
	h := b.env.BaseZ
	m := b.hw.MaterialThickness
	panel := geometry.Rectangle(w, h)

	// Mortise columns for the three support rails. The rails stand half
	// a material off the bottom edge.
	spec := JointSpec{EdgeLength: b.env.DeckZ, FingerCount: 3, PanelThickness: m, Kerf: b.hw.Kerf}
	slots, err := FingerSlots(spec, PhaseEven)
	if err != nil {
		return geometry.Polygon{}, err
	}
	yTop := h - m/2 - b.env.DeckZ
	var holes []geometry.Polygon
	for _, station := range b.railStations() {
		for _, s := range slots {
			column := geometry.Rotate90(s)
			holes = append(holes, geometry.Translate(column, station+m/2, yTop))
		}
	}

	r := b.env.PivotSupportR
	holes = append(holes,
		b.pivotBore(geometry.Pt(r, r)),   // head hinge, top rear
		b.pivotBore(geometry.Pt(w-r, r)), // latch, top front
	)
	return cutAll(panel, holes)
}

// rail builds one deck support rail: a strip with end tabs into the
// base sides. The front and back rails also carry screw-head reliefs
// under the carrier index screws.
func (b *panelBuilder) rail(withReliefs bool) (geometry.Polygon, error) {
	m := b.hw.MaterialThickness
	L := b.env.BaseX - 2*m
	H := b.env.DeckZ

	spec := JointSpec{EdgeLength: H, FingerCount: 3, PanelThickness: m, Kerf: b.hw.Kerf}
	spans, err := tabSpans(spec, PhaseEven)
	if err != nil {
		return geometry.Polygon{}, err
	}

	top := straightRun(L)
	if withReliefs {
		// The carriers sit centred across the base; these reliefs let
		// their index screw heads clear the rail's top edge.
		station := (b.env.BaseX-b.env.HeadX)/2 + b.env.ActiveXOffset/2 - m
		d := b.hw.ScrewDiameter
		top = tabRun([][2]float64{
			{station - d, station + d},
			{L - station - d, L - station + d},
		}, L, -m/2)
	}

	ring := assembleRing(
		edgeRun(top, geometry.Transform2{}),
		edgeRun(tabRun(spans, H, m), geometry.Transform2{Quarter: 1, Offset: geometry.Pt(L, 0)}),
		edgeRun(straightRun(L), geometry.Transform2{Quarter: 2, Offset: geometry.Pt(L, H)}),
		edgeRun(tabRun(spans, H, m), geometry.Transform2{Quarter: 3, Offset: geometry.Pt(0, H)}),
	)
	return geometry.Polygon{Outer: ring}, nil
}

func (b *panelBuilder) latch() (geometry.Polygon, error) {
	r := b.env.PivotSupportR
	L := b.env.HeadZ + 2*b.hw.MaterialThickness
	d := b.hw.ScrewDiameter

	body := geometry.Stadium(L, r, b.hw.Segments)

	// Hook notch on the upper edge, sized to drop over a screw head.
	cx := L - 2*d
	ring := append(geometry.Ring{}, body.Outer...)
	ring = append(ring,
		geometry.Pt(cx-d, -r),
		geometry.Pt(cx-d, -r/2),
		geometry.Pt(cx+d, -r/2),
		geometry.Pt(cx+d, -r),
	)

	return cutAll(geometry.Polygon{Outer: ring}, []geometry.Polygon{
		b.pivotBore(geometry.Pt(0, 0)),
	})
}

func (b *panelBuilder) latchSupport() (geometry.Polygon, error) {
	r := b.env.PivotSupportR
	w := 4 * r
	h := 2 * r
	m := b.hw.MaterialThickness

	pocket := CapturePocket(b.hw.ScrewDiameter, b.hw.NutFlatToFlat, b.hw.NutThickness, h-m/2)
	ring := assembleRing(
		edgeRun(notchRun(w, []float64{w / 2}, pocket), geometry.Transform2{}),
		edgeRun(straightRun(h), geometry.Transform2{Quarter: 1, Offset: geometry.Pt(w, 0)}),
		edgeRun(straightRun(w), geometry.Transform2{Quarter: 2, Offset: geometry.Pt(w, h)}),
		edgeRun(straightRun(h), geometry.Transform2{Quarter: 3, Offset: geometry.Pt(0, h)}),
	)
	return geometry.Polygon{Outer: ring}, nil
}

func (b *panelBuilder) spacer() (geometry.Polygon, error) {
	w := b.env.HeadX
	h := b.env.HingeYOffset
	panel := geometry.Rectangle(w, h)

	var holes []geometry.Polygon
	for _, c := range b.clampScrewCenters() {
		pocket := NutPocket(b.hw.NutFlatToFlat, b.hw.NutCornerToCorner)
		holes = append(holes, geometry.Translate(pocket, c.X, c.Y))
	}
	return cutAll(panel, holes)
}

func (b *panelBuilder) cableRetention() (geometry.Polygon, error) {
	c2c := b.hw.NutCornerToCorner
	w := 8 * c2c
	h := 2 * c2c
	panel := geometry.Rectangle(w, h)

	slotLen := w / 3
	slot := geometry.Stadium(slotLen, b.hw.ScrewDiameter/2, b.hw.Segments)

	return cutAll(panel, []geometry.Polygon{
		b.screwBore(geometry.Pt(c2c, h/2)),
		b.screwBore(geometry.Pt(w-c2c, h/2)),
		geometry.Translate(slot, (w-slotLen)/2, h/2),
	})
}

// tabSpans returns the kerf-grown [start, end] intervals of a joint's
// tabs, for boundary construction.
func tabSpans(spec JointSpec, phase Phase) ([][2]float64, error) {
	tabs, err := FingerJoint(spec, phase)
	if err != nil {
		return nil, err
	}
	spans := make([][2]float64, len(tabs))
	for i, t := range tabs {
		bb := t.BoundingBox()
		spans[i] = [2]float64{bb.MinX, bb.MaxX}
	}
	return spans, nil
}

// straightRun is a featureless canonical edge from (0,0) to (length,0).
func straightRun(length float64) []geometry.Point2 {
	return []geometry.Point2{{X: 0, Y: 0}, {X: length, Y: 0}}
}

// tabRun walks a canonical edge from (0,0) to (length,0) with
// rectangular excursions across the spans: depth > 0 protrudes outward
// (toward -Y), depth < 0 relieves into the body.
func tabRun(spans [][2]float64, length, depth float64) []geometry.Point2 {
	pts := []geometry.Point2{{X: 0, Y: 0}}
	for _, sp := range spans {
		pts = append(pts,
			geometry.Pt(sp[0], 0),
			geometry.Pt(sp[0], -depth),
			geometry.Pt(sp[1], -depth),
			geometry.Pt(sp[1], 0),
		)
	}
	return append(pts, geometry.Pt(length, 0))
}

// notchRun walks a canonical edge from (0,0) to (length,0), splicing
// the pocket profile inward (toward +Y) at each centre. The pocket ring
// must begin with its two y=0 lip vertices, as CapturePocket's does.
func notchRun(length float64, centers []float64, pocket geometry.Polygon) []geometry.Point2 {
	rev := pocket.Outer.Reversed()
	pts := []geometry.Point2{{X: 0, Y: 0}}
	for _, cx := range centers {
		pts = append(pts, geometry.Pt(cx+rev[len(rev)-1].X, 0))
		for _, p := range rev[:len(rev)-1] {
			pts = append(pts, geometry.Pt(cx+p.X, p.Y))
		}
	}
	return append(pts, geometry.Pt(length, 0))
}

// edgeRun maps a canonical run onto a panel edge.
func edgeRun(run []geometry.Point2, tr geometry.Transform2) []geometry.Point2 {
	out := make([]geometry.Point2, len(run))
	for i, p := range run {
		out[i] = tr.Apply(p)
	}
	return out
}

// assembleRing concatenates edge runs into a closed ring, dropping
// duplicate vertices at the seams.
func assembleRing(runs ...[]geometry.Point2) geometry.Ring {
	var ring geometry.Ring
	for _, run := range runs {
		for _, p := range run {
			if n := len(ring); n > 0 && samePoint(ring[n-1], p) {
				continue
			}
			ring = append(ring, p)
		}
	}
	if n := len(ring); n > 1 && samePoint(ring[0], ring[n-1]) {
		ring = ring[:n-1]
	}
	return ring
}

func samePoint(a, b geometry.Point2) bool {
	return math.Abs(a.X-b.X) < geometry.Epsilon && math.Abs(a.Y-b.Y) < geometry.Epsilon
}
