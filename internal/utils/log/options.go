package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Options represents logger configuration options
type Options struct {
	charmlog.Options
	Writer     io.Writer
	Styles     *Styles
	Default    bool
	Attrs      []any
	OutputFunc func() (io.Writer, error)

	// ColorProfile overrides the profile detected from Writer
	ColorProfile *termenv.Profile
}

// DefaultOptions returns the default logger options
func DefaultOptions() *Options {
	return &Options{
		Options: charmlog.Options{
			Level:           InfoLevel,
			ReportCaller:    false,
			ReportTimestamp: false,
		},
		Writer: os.Stderr,
		Styles: DefaultStyles(),
	}
}

// Apply applies the given options
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

type Option func(*Options)

func UseLevel(l Level) Option {
	return func(o *Options) {
		o.Level = l
	}
}

func UseOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

func UseOutputFunc(f func() (io.Writer, error)) Option {
	return func(o *Options) {
		o.OutputFunc = f
	}
}

func UseReportCaller(report bool) Option {
	return func(o *Options) {
		o.ReportCaller = report
	}
}

func UseReportTimestamp(report bool) Option {
	return func(o *Options) {
		o.ReportTimestamp = report
	}
}

func UseTimeFormat(format string) Option {
	return func(o *Options) {
		o.TimeFormat = format
	}
}

func UseFormatter(f charmlog.Formatter) Option {
	return func(o *Options) {
		o.Formatter = f
	}
}

// With attaches attributes to every record, e.g. the run id
func With(args ...any) Option {
	return func(o *Options) {
		o.Attrs = append(o.Attrs, args...)
	}
}

// UseColorProfile keeps level colours even when Writer is a file
func UseColorProfile(p termenv.Profile) Option {
	return func(o *Options) {
		o.ColorProfile = &p
	}
}

func AsDefault() Option {
	return func(o *Options) {
		o.Default = true
	}
}
