package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run shows the terminal screens until the user quits or ctx is cancelled.
func Run(ctx context.Context, library Library, outputDir string, logger *zap.Logger) error {
	p := tea.NewProgram(
		New(ctx, library, outputDir, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
