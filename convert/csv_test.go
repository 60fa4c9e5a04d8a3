package convert

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"flowercoco/types"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotations.csv")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Row
	}{
		{
			"standard header",
			"#item,x,y,width,height,label\n0,10,20,100,200,1\n1,5,6,7,8,1\n",
			[]Row{
				{Item: 0, X: 10, Y: 20, Width: 100, Height: 200, Label: 1},
				{Item: 1, X: 5, Y: 6, Width: 7, Height: 8, Label: 1},
			},
		},
		{
			"alternate column spellings",
			"#item,x,y,w,dy,class\n0,1,2,3,4,1\n",
			[]Row{{Item: 0, X: 1, Y: 2, Width: 3, Height: 4, Label: 1}},
		},
		{
			"dx and category_id spellings",
			"#item,x,y,dx,h,category_id\n0,1,2,3,4,2\n",
			[]Row{{Item: 0, X: 1, Y: 2, Width: 3, Height: 4, Label: 2}},
		},
		{
			"missing label column defaults to 1",
			"#item,x,y,width,height\n0,1,2,3,4\n",
			[]Row{{Item: 0, X: 1, Y: 2, Width: 3, Height: 4, Label: 1}},
		},
		{
			"comment rows skipped",
			"#item,x,y,width,height,label\n#0,0,0,0,0,0\n0,10,20,30,40,1\n",
			[]Row{{Item: 0, X: 10, Y: 20, Width: 30, Height: 40, Label: 1}},
		},
		{
			"malformed rows discarded",
			"#item,x,y,width,height,label\n0,ten,20,30,40,1\n1,10,20,30,40,1\n",
			[]Row{{Item: 1, X: 10, Y: 20, Width: 30, Height: 40, Label: 1}},
		},
		{
			"fractional coordinates",
			"#item,x,y,width,height,label\n0,10.5,20.25,30,40,1\n",
			[]Row{{Item: 0, X: 10.5, Y: 20.25, Width: 30, Height: 40, Label: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseRows(writeCSV(t, tt.content))
			if err != nil {
				t.Fatalf("ParseRows: %v", err)
			}
			if !reflect.DeepEqual(rows, tt.want) {
				t.Errorf("ParseRows = %+v, want %+v", rows, tt.want)
			}
		})
	}
}

func TestParseRowsMissingFile(t *testing.T) {
	if _, err := ParseRows(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRowRoundTrip(t *testing.T) {
	annotations := []types.AnnotationRecord{
		{ID: 7, ImageID: 8, CategoryID: 9, BBox: []float64{10, 20, 100, 200}, Area: 20000},
		{ID: 8, ImageID: 8, CategoryID: 9, BBox: []float64{1, 2, 3, 4}, Area: 12},
	}

	rows := AnnotationRows(annotations)
	path := filepath.Join(t.TempDir(), "round.csv")
	if err := WriteRows(path, rows); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}

	parsed, err := ParseRows(path)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}

	if !reflect.DeepEqual(parsed, rows) {
		t.Errorf("round trip changed rows: got %+v, want %+v", parsed, rows)
	}
	for i, row := range parsed {
		if !reflect.DeepEqual(row.BBox(), annotations[i].BBox) {
			t.Errorf("row %d bbox = %v, want %v", i, row.BBox(), annotations[i].BBox)
		}
		if row.Label != 1 {
			t.Errorf("row %d label = %d, want 1", i, row.Label)
		}
	}
}

func TestAnnotationRowsSkipsBadBBox(t *testing.T) {
	annotations := []types.AnnotationRecord{
		{ID: 1, BBox: []float64{1, 2, 3}},
		{ID: 2, BBox: []float64{10, 20, 30, 40}},
	}

	rows := AnnotationRows(annotations)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	// The skipped annotation still consumes an item number.
	if rows[0].Item != 1 {
		t.Errorf("Item = %d, want 1", rows[0].Item)
	}
}
