package importer

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// Marker-layer conventions: pads on the ignore layer are excluded from
// probing, pads on the force layer are probed regardless of pad type.
const (
	DefaultIgnoreLayer = "Eco1.User"
	DefaultForceLayer  = "Eco2.User"
	DefaultCopperLayer = "F.Cu"
)

// copperArcSegments tessellates track end caps. The silhouette is
// advisory, so a coarse count keeps validation scenes small.
const copperArcSegments = 12

// KiCadOptions tunes test-point extraction. The zero value selects the
// defaults above.
type KiCadOptions struct {
	IgnoreLayer string // pads on this layer are never probe targets
	ForceLayer  string // pads on this layer are probed even when not SMD
	CopperLayer string // tracks on this layer feed the validation silhouette
}

func (o KiCadOptions) withDefaults() KiCadOptions {
	if o.IgnoreLayer == "" {
		o.IgnoreLayer = DefaultIgnoreLayer
	}
	if o.ForceLayer == "" {
		o.ForceLayer = DefaultForceLayer
	}
	if o.CopperLayer == "" {
		o.CopperLayer = DefaultCopperLayer
	}
	return o
}

// ImportKiCad reads a .kicad_pcb file and extracts the board outline,
// the probe targets and the copper silhouette.
func ImportKiCad(path string, opts KiCadOptions) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()

	return ImportKiCadFrom(f, opts)
}

// ImportKiCadFrom is ImportKiCad over any reader. Useful for testing
// and for boards arriving over the wire.
func ImportKiCadFrom(r io.Reader, opts KiCadOptions) ImportResult {
	opts = opts.withDefaults()
	result := ImportResult{}

	nodes, err := parseSexp(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse board file: %v", err))
		return result
	}

	var root *sexpNode
	for _, n := range nodes {
		if n.key() == "kicad_pcb" {
			root = n
			break
		}
	}
	if root == nil {
		result.Errors = append(result.Errors, "Not a KiCad board: no (kicad_pcb ...) expression found")
		return result
	}

	loops, sawEdges := edgeCutsLoops(root)
	switch {
	case len(loops) > 0:
		board, warns, errs := boardFromLoops(loops)
		result.Warnings = append(result.Warnings, warns...)
		if len(errs) > 0 {
			// A broken outline is recoverable here: the normalizer can
			// fall back to test point bounds.
			result.Warnings = append(result.Warnings, errs...)
		} else {
			result.Board = board
		}
	case sawEdges:
		result.Warnings = append(result.Warnings, "Edge.Cuts does not form a closed loop")
	default:
		result.Warnings = append(result.Warnings, "No Edge.Cuts outline in this board")
	}

	result.Points = extractTestPoints(root, opts)
	if len(result.Points) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"No test points found; SMD pads without paste are probed, or place pads on %s to force them", opts.ForceLayer))
	}

	result.Copper = copperSilhouette(root, opts.CopperLayer)

	if len(result.Board.Outline.Outer) >= 3 {
		over := footprintOverhang(root, result.Board.Outline.Outer.BoundingBox())
		if over > 0.5 {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Components overhang the board outline by up to %.1f mm", over))
		}
	}

	return result
}

// extractTestPoints walks every footprint and applies the probe-pad
// rules: an SMD pad on a copper face is a probe target unless it also
// sits on a paste layer (a component land, not a test pad) or on the
// ignore layer; the force layer admits any pad on the face, SMD or not.
func extractTestPoints(root *sexpNode, opts KiCadOptions) []model.TestPoint {
	faces := [...]struct {
		cu, paste string
		side      model.Side
	}{
		{"F.Cu", "F.Paste", model.SideTop},
		{"B.Cu", "B.Paste", model.SideBottom},
	}

	var points []model.TestPoint
	for _, fp := range footprints(root) {
		at := fp.child("at")
		if at == nil {
			continue
		}
		fpos := geometry.Pt(at.floatOr(1, 0), at.floatOr(2, 0))
		angle := at.floatOr(3, 0)

		for _, pad := range fp.children("pad") {
			layers := padLayers(pad)
			if len(layers) == 0 {
				continue
			}
			abs := padAbsolute(fpos, angle, pad)
			forced := layerMatch(layers, opts.ForceLayer)
			padType := pad.str(2)

			for _, face := range faces {
				if !layerMatch(layers, face.cu) {
					continue
				}
				if !forced {
					if layerMatch(layers, opts.IgnoreLayer) ||
						layerMatch(layers, face.paste) ||
						padType != "smd" {
						continue
					}
				}
				points = append(points, model.TestPoint{Position: abs, Side: face.side})
			}
		}
	}
	return points
}

// footprints returns every footprint node, accepting the v5 "module"
// spelling alongside the v6 "footprint" one.
func footprints(root *sexpNode) []*sexpNode {
	fps := root.children("footprint")
	return append(fps, root.children("module")...)
}

func padLayers(pad *sexpNode) []string {
	l := pad.child("layers")
	if l == nil {
		return nil
	}
	return l.atoms()
}

// layerMatch reports whether name is in the layer set, honouring KiCad
// wildcards like "*.Cu".
func layerMatch(set []string, name string) bool {
	for _, l := range set {
		if l == name {
			return true
		}
		if strings.HasPrefix(l, "*.") {
			if i := strings.IndexByte(name, '.'); i >= 0 && name[i+1:] == l[2:] {
				return true
			}
		}
	}
	return false
}

// padAbsolute composes the footprint placement with the pad's local
// offset. KiCad rotates counterclockwise on screen with the Y axis
// pointing down, so the matrix is transposed from the usual one.
func padAbsolute(fpos geometry.Point2, angleDeg float64, pad *sexpNode) geometry.Point2 {
	at := pad.child("at")
	if at == nil {
		return fpos
	}
	px := at.floatOr(1, 0)
	py := at.floatOr(2, 0)
	if angleDeg != 0 {
		sin, cos := math.Sincos(angleDeg * math.Pi / 180)
		px, py = px*cos+py*sin, -px*sin+py*cos
	}
	return geometry.Pt(fpos.X+px, fpos.Y+py)
}

// edgeCutsLoops collects the closed loops drawn on Edge.Cuts. The
// second return reports whether any Edge.Cuts entity was seen at all,
// so the caller can tell an open outline from a missing one.
func edgeCutsLoops(root *sexpNode) ([]geometry.Ring, bool) {
	var loops []geometry.Ring
	var segs []segment
	saw := false

	for _, n := range root.list {
		if n.leaf || !onEdgeCuts(n) {
			continue
		}
		switch n.key() {
		case "gr_line":
			s, okS := nodeXY(n, "start")
			e, okE := nodeXY(n, "end")
			if okS && okE {
				saw = true
				segs = append(segs, segment{start: s, end: e})
			}

		case "gr_rect":
			s, okS := nodeXY(n, "start")
			e, okE := nodeXY(n, "end")
			if okS && okE {
				saw = true
				loops = append(loops, geometry.Ring{
					s, geometry.Pt(e.X, s.Y), e, geometry.Pt(s.X, e.Y),
				})
			}

		case "gr_circle":
			c, okC := nodeXY(n, "center")
			e, okE := nodeXY(n, "end")
			if okC && okE {
				saw = true
				r := c.Distance(e)
				ring := make(geometry.Ring, 64)
				for i := range ring {
					a := 2 * math.Pi * float64(i) / 64
					ring[i] = geometry.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
				}
				loops = append(loops, ring)
			}

		case "gr_arc":
			pts := edgeArcPoints(n)
			if len(pts) >= 2 {
				saw = true
				segs = append(segs, pointsToSegments(pts)...)
			}

		case "gr_poly":
			ptsNode := n.child("pts")
			if ptsNode == nil {
				continue
			}
			var ring geometry.Ring
			for _, xy := range ptsNode.children("xy") {
				x, err1 := xy.float(1)
				y, err2 := xy.float(2)
				if err1 == nil && err2 == nil {
					ring = append(ring, geometry.Pt(x, y))
				}
			}
			if len(ring) >= 3 {
				saw = true
				loops = append(loops, ring)
			}
		}
	}

	loops = append(loops, chainSegments(segs, chainTolerance)...)
	return loops, saw
}

func onEdgeCuts(n *sexpNode) bool {
	l := n.child("layer")
	return l != nil && l.str(1) == "Edge.Cuts"
}

func nodeXY(n *sexpNode, key string) (geometry.Point2, bool) {
	c := n.child(key)
	if c == nil {
		return geometry.Point2{}, false
	}
	x, err1 := c.float(1)
	y, err2 := c.float(2)
	if err1 != nil || err2 != nil {
		return geometry.Point2{}, false
	}
	return geometry.Pt(x, y), true
}

// edgeArcPoints tessellates a gr_arc in either file dialect: the v6
// three-point form (start/mid/end) or the v5 centre form
// (start=centre, end=arc start, angle=sweep).
func edgeArcPoints(n *sexpNode) []geometry.Point2 {
	const segments = 32

	s, okS := nodeXY(n, "start")
	e, okE := nodeXY(n, "end")
	if !okS || !okE {
		return nil
	}

	if m, okM := nodeXY(n, "mid"); okM {
		return arcThroughPoints(s, m, e, segments)
	}

	angleNode := n.child("angle")
	if angleNode == nil {
		return []geometry.Point2{s, e}
	}
	sweep := angleNode.floatOr(1, 0) * math.Pi / 180
	// v5: rotate the arc start (e) about the centre (s). A positive
	// angle is clockwise on screen, which with Y down is the standard
	// counterclockwise matrix.
	pts := make([]geometry.Point2, 0, segments+1)
	dx, dy := e.X-s.X, e.Y-s.Y
	for i := 0; i <= segments; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / segments)
		pts = append(pts, geometry.Pt(s.X+dx*cos-dy*sin, s.Y+dx*sin+dy*cos))
	}
	return pts
}

// arcThroughPoints tessellates the arc passing through three points by
// finding their circumcentre and sweeping from s to e via m.
func arcThroughPoints(s, m, e geometry.Point2, segments int) []geometry.Point2 {
	d := 2 * (s.X*(m.Y-e.Y) + m.X*(e.Y-s.Y) + e.X*(s.Y-m.Y))
	if math.Abs(d) < 1e-12 {
		return []geometry.Point2{s, e} // collinear, treat as a line
	}
	s2 := s.X*s.X + s.Y*s.Y
	m2 := m.X*m.X + m.Y*m.Y
	e2 := e.X*e.X + e.Y*e.Y
	cx := (s2*(m.Y-e.Y) + m2*(e.Y-s.Y) + e2*(s.Y-m.Y)) / d
	cy := (s2*(e.X-m.X) + m2*(s.X-e.X) + e2*(m.X-s.X)) / d
	r := math.Hypot(s.X-cx, s.Y-cy)

	a0 := math.Atan2(s.Y-cy, s.X-cx)
	a1 := math.Atan2(m.Y-cy, m.X-cx)
	a2 := math.Atan2(e.Y-cy, e.X-cx)

	// Sweep in whichever direction passes through the mid point.
	ccwSweep := math.Mod(a2-a0+4*math.Pi, 2*math.Pi)
	ccwMid := math.Mod(a1-a0+4*math.Pi, 2*math.Pi)
	sweep, dir := ccwSweep, 1.0
	if ccwMid > ccwSweep {
		sweep, dir = 2*math.Pi-ccwSweep, -1.0
	}

	pts := make([]geometry.Point2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := a0 + dir*sweep*float64(i)/float64(segments)
		pts = append(pts, geometry.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return pts
}

// copperSilhouette renders every straight track on the layer as a
// capsule. Arcs and zone fills are skipped: the overlay needs enough
// copper to judge probe surroundings, not a fabrication-accurate image.
func copperSilhouette(root *sexpNode, layer string) []geometry.Polygon {
	var polys []geometry.Polygon
	for _, seg := range root.children("segment") {
		l := seg.child("layer")
		if l == nil || l.str(1) != layer {
			continue
		}
		s, okS := nodeXY(seg, "start")
		e, okE := nodeXY(seg, "end")
		if !okS || !okE {
			continue
		}
		w := 0.0
		if wn := seg.child("width"); wn != nil {
			w = wn.floatOr(1, 0)
		}
		if w <= 0 {
			continue
		}
		polys = append(polys, geometry.Capsule(s, e, w/2, copperArcSegments))
	}
	return polys
}

// footprintOverhang returns how far component pads extend past the
// outline box. Pad extents stand in for courtyards, which not every
// board defines. Overhang is normal for connectors; the caller only
// warns about it.
func footprintOverhang(root *sexpNode, outline geometry.Rect) float64 {
	over := 0.0
	for _, fp := range footprints(root) {
		at := fp.child("at")
		if at == nil {
			continue
		}
		fpos := geometry.Pt(at.floatOr(1, 0), at.floatOr(2, 0))
		angle := at.floatOr(3, 0)

		for _, pad := range fp.children("pad") {
			abs := padAbsolute(fpos, angle, pad)
			halfW, halfH := 0.0, 0.0
			if sz := pad.child("size"); sz != nil {
				halfW = sz.floatOr(1, 0) / 2
				halfH = sz.floatOr(2, 0) / 2
			}
			over = math.Max(over, outline.MinX-(abs.X-halfW))
			over = math.Max(over, (abs.X+halfW)-outline.MaxX)
			over = math.Max(over, outline.MinY-(abs.Y-halfH))
			over = math.Max(over, (abs.Y+halfH)-outline.MaxY)
		}
	}
	return over
}
