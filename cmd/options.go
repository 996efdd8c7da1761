package cmd

// Options holds the shared command-line options for the gitcher CLI.
type Options struct {
	Format    string
	Output    string
	Verbosity int
	Insights  bool
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithInsights prints repository aggregations instead of the table.
func WithInsights(insights bool) Option {
	return func(o *Options) {
		o.Insights = insights
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
