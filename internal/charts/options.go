package charts

import (
	"errors"

	"github.com/mrlokans/library-manager/internal/config"
)

var ErrNoData = errors.New("no data to chart")

// Options sets the pixel size of rendered charts. Zero fields fall back to
// the configured defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = config.DefaultChartWidth
	}
	if o.Height <= 0 {
		o.Height = config.DefaultChartHeight
	}
	return o
}
