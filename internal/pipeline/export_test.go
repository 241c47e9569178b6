package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestExportParquet(t *testing.T) {
	doc := &Document{
		ProjectName: "Drone Initiative",
		Plan:        "plan",
		Items: []Item{
			{ID: "1", Title: "Research", Explanation: "why", ImgPrompt: "a lab"},
			{ID: "1.1", Title: "Survey", Explanation: "how", ImgPrompt: "a chart"},
		},
	}

	path := filepath.Join(t.TempDir(), "items.parquet")
	if err := ExportParquet(doc, path); err != nil {
		t.Fatalf("ExportParquet failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatal(err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("Failed to open parquet file: %v", err)
	}

	reader := parquet.NewGenericReader[ExportRecord](pf)
	defer reader.Close()

	records := make([]ExportRecord, 2)
	n, err := reader.Read(records)
	if n != 2 {
		t.Fatalf("Expected 2 rows, got %d (err: %v)", n, err)
	}

	if records[0].ProjectName != "Drone Initiative" || records[0].ID != "1" || records[0].Depth != 0 {
		t.Errorf("Unexpected first row: %+v", records[0])
	}
	if records[1].ID != "1.1" || records[1].Depth != 1 || records[1].ImgPrompt != "a chart" {
		t.Errorf("Unexpected second row: %+v", records[1])
	}
}

func TestExportParquetEmptyDocument(t *testing.T) {
	doc := &Document{ProjectName: "P"}
	if err := ExportParquet(doc, filepath.Join(t.TempDir(), "x.parquet")); err == nil {
		t.Error("Expected an error for a document without items")
	}
}
