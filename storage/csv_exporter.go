package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
)

// CSVExporter writes the product catalog with its competitor prices
// as CSV, one row per (product, source) pair.
type CSVExporter struct {
	catalogNames []string
}

// NewCSVExporter fixes the source column order to the catalog order.
func NewCSVExporter(catalogNames []string) *CSVExporter {
	return &CSVExporter{catalogNames: catalogNames}
}

// Export writes all products to w.
//
// Columns: id, name, my_price, source, status, price, similarity, reason
func (e *CSVExporter) Export(w io.Writer, products []models.Product) error {
	// csv.NewWriter handles quoting, commas inside fields, line endings
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"id", "name", "my_price", "source", "status", "price", "similarity", "reason"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range products {
		for _, source := range e.catalogNames {
			entry, ok := p.Competitors[source]
			if !ok {
				continue
			}

			similarity := ""
			if entry.Status == models.StatusMatch {
				similarity = strconv.FormatFloat(entry.Similarity, 'f', 1, 64)
			}

			row := []string{
				strconv.Itoa(p.ID),
				p.Name,
				strconv.FormatFloat(p.MyPrice, 'f', 2, 64),
				source,
				entry.Status,
				strconv.FormatFloat(entry.Price, 'f', 2, 64),
				similarity,
				entry.Reason,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
