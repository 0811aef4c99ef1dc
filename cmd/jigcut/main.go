// JigCut: laser-cut test fixture generator for PCB bring-up
//
// Reads test point locations from a KiCad board file (or CSV/Excel
// export) and produces a complete flip-hinge fixture as laser-ready
// panel outlines, packed onto a single sheet.
//
// Build:
//   go build -o jigcut ./cmd/jigcut
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o jigcut.exe ./cmd/jigcut
//   GOOS=darwin  GOARCH=amd64 go build -o jigcut-darwin ./cmd/jigcut

package main

import "github.com/piwi3910/JigCut/cmd/jigcut/cmd"

func main() {
	cmd.Execute()
}
