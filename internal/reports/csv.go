package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/mrlokans/library-manager/internal/entities"
)

var csvHeader = []string{"Title", "Author", "Genre", "Status"}

// GenerateCSV writes a header row and one record per book in the given order.
// Fields are quoted only when they contain a comma, quote or line break.
func GenerateCSV(books []entities.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, book := range books {
		record := []string{book.Title, book.Author, book.Genre, string(book.Status)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record for book %d: %w", book.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
