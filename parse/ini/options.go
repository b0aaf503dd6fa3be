package ini

import (
	"io"
	"log/slog"
)

// DefaultMaxLineSize bounds a single physical line.
const DefaultMaxLineSize = 1 << 20

type options struct {
	strict  bool
	logger  *slog.Logger
	maxLine int
	path    string
}

func defaultOptions() options {
	return options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxLine: DefaultMaxLineSize,
	}
}

// Option configures parsing.
type Option func(*options)

// WithStrict makes parsing stop at the first dropped line and return a
// *ParseError for it.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger that receives a debug record for every dropped
// line.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxLineSize sets the longest line the parser accepts.
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLine = n
		}
	}
}
