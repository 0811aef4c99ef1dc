package preview

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/piwi3910/JigCut/internal/model"
)

// stlTriangle is the 50-byte binary STL facet record.
type stlTriangle struct {
	Normal [3]float32
	V0     [3]float32
	V1     [3]float32
	V2     [3]float32
	Attr   uint16
}

// ExportSheetSTL meshes the flat cut preview of the sheet and writes it
// as binary STL.
func ExportSheetSTL(path string, sheet *model.LayoutSheet, thickness float64) error {
	solid, err := SheetSolid(sheet, thickness)
	if err != nil {
		return err
	}
	return ExportSTL(path, solid)
}

// ExportSTL meshes a solid with marching cubes and writes binary STL.
func ExportSTL(path string, solid sdf.SDF3) error {
	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(meshCells))
	if len(triangles) == 0 {
		return errors.New("marching cubes produced an empty mesh")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create STL file: %w", err)
	}
	if err := writeSTL(f, triangles); err != nil {
		f.Close()
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return f.Close()
}

// writeSTL emits the binary STL container: an 80-byte header, a uint32
// facet count, then 50 bytes per facet, all little-endian.
func writeSTL(w io.Writer, triangles []*sdf.Triangle3) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "JigCut flat cut preview")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return err
	}
	for _, t := range triangles {
		n := t.Normal()
		rec := stlTriangle{
			Normal: [3]float32{float32(n.X), float32(n.Y), float32(n.Z)},
			V0:     [3]float32{float32(t[0].X), float32(t[0].Y), float32(t[0].Z)},
			V1:     [3]float32{float32(t[1].X), float32(t[1].Y), float32(t[1].Z)},
			V2:     [3]float32{float32(t[2].X), float32(t[2].Y), float32(t[2].Z)},
		}
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
