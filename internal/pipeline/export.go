package pipeline

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ExportRecord is the flat row written for each outline item when exporting
// a processed document as a parquet dataset.
type ExportRecord struct {
	ProjectName string `parquet:"project_name"`
	ID          string `parquet:"id"`
	Title       string `parquet:"title"`
	Depth       int32  `parquet:"depth"`
	Explanation string `parquet:"explanation"`
	ImgPrompt   string `parquet:"img_prompt"`
}

// ExportParquet writes the document's items to a parquet file, one row per
// item, in outline order.
func ExportParquet(doc *Document, path string) error {
	if len(doc.Items) == 0 {
		return fmt.Errorf("the document carries no numbered list to export")
	}

	records := make([]ExportRecord, 0, len(doc.Items))
	for _, item := range doc.Items {
		records = append(records, ExportRecord{
			ProjectName: doc.ProjectName,
			ID:          item.ID,
			Title:       item.Title,
			Depth:       int32(item.Depth()),
			Explanation: item.Explanation,
			ImgPrompt:   item.ImgPrompt,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ExportRecord](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}
