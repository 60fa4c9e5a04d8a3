package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"flowercoco/types"
)

// CSVHeader is the first line of every tabular annotation file
const CSVHeader = "#item,x,y,width,height,label"

// Row is one tabular annotation: a bounding box with its sequential
// item number and class label
type Row struct {
	Item   int
	X      float64
	Y      float64
	Width  float64
	Height float64
	Label  int
}

// BBox returns the row's box as [x, y, width, height]
func (r Row) BBox() []float64 {
	return []float64{r.X, r.Y, r.Width, r.Height}
}

// ParseRows reads a tabular annotation file. Parsing is tolerant:
// rows starting with '#' are skipped, alternate column spellings are
// accepted (width|w|dx, height|h|dy, label|class|category_id), absent
// columns default to 0 (label to 1), and rows with unparseable fields
// are silently discarded so a malformed row never aborts the batch.
func ParseRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open csv file %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse csv file %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	var rows []Row
	for _, record := range records[1:] {
		if len(record) == 0 || strings.HasPrefix(record[0], "#") {
			continue
		}
		if row, ok := parseRow(record, columns); ok {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func parseRow(record []string, columns map[string]int) (Row, bool) {
	var row Row
	var ok bool

	if row.Item, ok = intField(record, columns, 0, "#item", "item"); !ok {
		return Row{}, false
	}
	if row.X, ok = floatField(record, columns, "x"); !ok {
		return Row{}, false
	}
	if row.Y, ok = floatField(record, columns, "y"); !ok {
		return Row{}, false
	}
	if row.Width, ok = floatField(record, columns, "width", "w", "dx"); !ok {
		return Row{}, false
	}
	if row.Height, ok = floatField(record, columns, "height", "h", "dy"); !ok {
		return Row{}, false
	}
	if row.Label, ok = intField(record, columns, 1, "label", "class", "category_id"); !ok {
		return Row{}, false
	}

	return row, true
}

// fieldValue resolves the first of the given column names present in
// the record
func fieldValue(record []string, columns map[string]int, names ...string) (string, bool) {
	for _, name := range names {
		if idx, present := columns[name]; present && idx < len(record) {
			return record[idx], true
		}
	}
	return "", false
}

func floatField(record []string, columns map[string]int, names ...string) (float64, bool) {
	value, present := fieldValue(record, columns, names...)
	if !present {
		return 0, true
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func intField(record []string, columns map[string]int, fallback int, names ...string) (int, bool) {
	value, present := fieldValue(record, columns, names...)
	if !present {
		return fallback, true
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// AnnotationRows converts a record's annotations to tabular rows,
// numbering items sequentially from 0 and fixing the label to 1.
// Annotations without a 4-element bbox are dropped but still consume
// an item number.
func AnnotationRows(annotations []types.AnnotationRecord) []Row {
	var rows []Row
	for idx, ann := range annotations {
		if len(ann.BBox) != 4 {
			continue
		}
		rows = append(rows, Row{
			Item:   idx,
			X:      ann.BBox[0],
			Y:      ann.BBox[1],
			Width:  ann.BBox[2],
			Height: ann.BBox[3],
			Label:  1,
		})
	}
	return rows
}

// WriteRows writes tabular annotations with the standard header
func WriteRows(path string, rows []Row) error {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%d\n",
			row.Item,
			formatNumber(row.X),
			formatNumber(row.Y),
			formatNumber(row.Width),
			formatNumber(row.Height),
			row.Label,
		))
	}
	return os.WriteFile(path, []byte(b.String()), 0666)
}

// formatNumber renders integral values without a fractional part so
// CSV round trips preserve bbox values exactly
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
