package ingest

import "strings"

// CellKind discriminates the value a spreadsheet cell was decided to hold.
// The decision happens once at read time so classification never re-inspects
// raw cell contents.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellImage
)

// CellValue is the typed content of one worksheet cell.
type CellValue struct {
	Kind   CellKind
	Text   string
	Image  []byte
	Format string
}

// EmptyCell returns the empty cell value.
func EmptyCell() CellValue { return CellValue{Kind: CellEmpty} }

// TextCell decides a raw cell string into Empty or Text. Whitespace-only
// cells are empty; text is kept untrimmed so classification controls its own
// trimming.
func TextCell(raw string) CellValue {
	if strings.TrimSpace(raw) == "" {
		return EmptyCell()
	}
	return CellValue{Kind: CellText, Text: raw}
}

// ImageCell wraps embedded picture bytes with their format extension
// (e.g. "png").
func ImageCell(data []byte, format string) CellValue {
	return CellValue{Kind: CellImage, Image: data, Format: format}
}

// textRow converts a raw worksheet row into typed cells.
func textRow(raw []string) []CellValue {
	row := make([]CellValue, len(raw))
	for i, cell := range raw {
		row[i] = TextCell(cell)
	}
	return row
}
