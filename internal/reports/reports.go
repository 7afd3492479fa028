// Package reports renders a user's books as downloadable CSV and PDF files.
// Reports are built in memory on every request and never cached.
package reports

import "fmt"

const (
	CSVContentType = "text/csv"
	PDFContentType = "application/pdf"

	// PDFFilename is the same for every user.
	PDFFilename = "library.pdf"
)

// CSVFilename returns the download name of a user's CSV export. Characters
// that are unsafe in a filename are dropped from the username.
func CSVFilename(username string) string {
	return fmt.Sprintf("%s_library.csv", sanitizeFilename(username))
}
