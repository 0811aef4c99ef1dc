// Package importer reads board data from the supported sources:
// KiCad .kicad_pcb files, tabular test-point lists (CSV/XLSX) and
// mechanical DXF outlines. It supports automatic delimiter detection,
// flexible column mapping and case-insensitive header recognition, and
// reports per-row problems without aborting a file.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult is everything one input file yielded. Tabular sources
// fill Points only; KiCad boards can fill all of it. Non-empty Points
// alongside non-empty Errors means a partial import.
type ImportResult struct {
	Board    model.BoardGeometry
	Points   []model.TestPoint
	Copper   []geometry.Polygon
	Errors   []string
	Warnings []string
}

// Err folds the error list into a single error for callers that stop
// on any failure.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(r.Errors, "; "))
}

// HasBoard reports whether the source carried a usable outline.
func (r ImportResult) HasBoard() bool {
	return len(r.Board.Outline.Outer) >= 3
}

// Merge folds another source into this one: its points are appended,
// its board wins only when this result has none. Used to combine a DXF
// outline with a CSV point list.
func (r *ImportResult) Merge(other ImportResult) {
	if !r.HasBoard() && other.HasBoard() {
		r.Board = other.Board
	}
	r.Points = append(r.Points, other.Points...)
	r.Copper = append(r.Copper, other.Copper...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// ExtractBoard reads any supported board source, chosen by extension.
func ExtractBoard(path string, opts KiCadOptions) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kicad_pcb":
		return ImportKiCad(path, opts)
	case ".csv":
		return ImportCSV(path)
	case ".xlsx":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXFOutline(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf(
			"Unsupported board format %q (use .kicad_pcb, .csv, .xlsx or .dxf)", filepath.Ext(path))}}
	}
}

// ColumnMapping maps semantic column roles to their indices in the
// data. -1 marks an absent column.
type ColumnMapping struct {
	X    int
	Y    int
	Side int
	Name int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"x":    {"x", "pos_x", "posx", "pos x", "x_mm", "x (mm)", "tp_x"},
	"y":    {"y", "pos_y", "posy", "pos y", "y_mm", "y (mm)", "tp_y"},
	"side": {"side", "layer", "surface", "face"},
	"name": {"name", "net", "label", "pad", "point", "refdes", "designator"},
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter. It tries comma, semicolon, tab, and pipe; the
// delimiter producing the most consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer higher consistency, then more columns.
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// matches case-insensitively against the known aliases for each role.
// Returns the mapping and true if a header was detected, or the default
// positional mapping (x, y, side) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{X: -1, Y: -1, Side: -1, Name: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "x":
					if mapping.X == -1 {
						mapping.X = i
					}
				case "y":
					if mapping.Y == -1 {
						mapping.Y = i
					}
				case "side":
					if mapping.Side == -1 {
						mapping.Side = i
					}
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{X: 0, Y: 1, Side: 2, Name: -1}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts one TestPoint from a row using the given column
// mapping. Returns the point, any error message, and any warning.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.TestPoint, string, string) {
	if name := getCell(row, mapping.Name); name != "" {
		rowLabel = fmt.Sprintf("%s (%s)", rowLabel, name)
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return model.TestPoint{}, fmt.Sprintf("%s: Missing x value", rowLabel), ""
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return model.TestPoint{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr), ""
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return model.TestPoint{}, fmt.Sprintf("%s: Missing y value", rowLabel), ""
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return model.TestPoint{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, yStr), ""
	}

	point := model.TestPoint{Position: geometry.Pt(x, y), Side: model.SideTop}

	var warning string
	if sideStr := getCell(row, mapping.Side); sideStr != "" {
		side, ok := model.ParseSide(sideStr)
		if ok {
			point.Side = side
		} else {
			warning = fmt.Sprintf("%s: Unknown side '%s', defaulting to Top", rowLabel, sideStr)
		}
	}

	return point, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports test points from a CSV file. It detects the
// delimiter automatically and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports test points from a CSV reader with a
// known delimiter. Useful for testing.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports test points from an .xlsx workbook. Reads the
// first sheet and auto-detects the column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data. It
// detects headers, maps columns, and parses each row into a TestPoint.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "x")
		}
		if mapping.Y == -1 {
			missing = append(missing, "y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// No recognized header: when the first cell is not numeric the
		// row is an unknown header, skip it and map positionally.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][0]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Unrecognized header row, assuming x, y, side columns")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		point, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Points = append(result.Points, point)
	}

	return result
}
