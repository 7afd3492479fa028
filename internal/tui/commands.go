package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/reports"
	"github.com/mrlokans/library-manager/internal/validation"
)

var errEmptyLibrary = errors.New("no books to export")

type registeredMsg struct{}

type loggedInMsg struct {
	user *entities.User
}

type bookAddedMsg struct{}

type booksLoadedMsg struct {
	books []entities.Book
}

type exportedMsg struct {
	path string
}

// errMsg carries a failed store or export operation back to Update.
type errMsg struct {
	op  string
	err error
}

func (e errMsg) Error() string { return e.op + ": " + e.err.Error() }

func register(ctx context.Context, library Library, in validation.Registration) tea.Cmd {
	return func() tea.Msg {
		if _, err := library.Register(ctx, in); err != nil {
			return errMsg{op: "register", err: err}
		}
		return registeredMsg{}
	}
}

func login(ctx context.Context, library Library, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := library.Login(ctx, email, password)
		if err != nil {
			return errMsg{op: "login", err: err}
		}
		return loggedInMsg{user: user}
	}
}

func addBook(ctx context.Context, library Library, ownerID uint, in validation.BookInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := library.AddBook(ctx, ownerID, in); err != nil {
			return errMsg{op: "add book", err: err}
		}
		return bookAddedMsg{}
	}
}

func loadBooks(ctx context.Context, library Library, ownerID uint) tea.Cmd {
	return func() tea.Msg {
		books, err := library.ListBooks(ctx, ownerID)
		if err != nil {
			return errMsg{op: "view books", err: err}
		}
		return booksLoadedMsg{books: books}
	}
}

// exportBooks re-reads the user's books and writes the CSV or PDF report
// into dir.
func exportBooks(ctx context.Context, library Library, ownerID uint, username, dir, action string) tea.Cmd {
	return func() tea.Msg {
		books, err := library.ListBooks(ctx, ownerID)
		if err != nil {
			return errMsg{op: "export", err: err}
		}
		if len(books) == 0 {
			return errMsg{op: "export", err: errEmptyLibrary}
		}

		var (
			data []byte
			name string
		)
		if action == actionDownloadCSV {
			data, err = reports.GenerateCSV(books)
			name = reports.CSVFilename(username)
		} else {
			data, err = reports.GeneratePDF(books, username)
			name = reports.PDFFilename
		}
		if err != nil {
			return errMsg{op: "export", err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errMsg{op: "export", err: fmt.Errorf("failed to create %s: %w", dir, err)}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errMsg{op: "export", err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return exportedMsg{path: path}
	}
}
