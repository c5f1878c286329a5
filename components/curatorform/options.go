package curatorform

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-curatorform/pkg/curator"
	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/render"
)

const (
	defaultRoutePath   = "/curator"
	defaultFormat      = "vanilla"
	defaultFormatParam = "format"
	defaultMaxRows     = 50
	defaultMaxBody     = 1 << 20
)

// GuardFunc rejects a request before the form is handled. Returning an
// HTTPError selects the status code; any other error is a 403.
type GuardFunc func(r *http.Request) error

// CSRFFunc returns the hidden field name and token to embed in the form.
// An empty name disables the field.
type CSRFFunc func(r *http.Request) (name, token string)

type Options struct {
	RoutePath   string
	FormatParam string
	// DefaultFormat names the renderer used when neither the format query
	// parameter nor the Accept header selects one.
	DefaultFormat string
	// SuccessRedirect is where HTML submissions are sent after a successful
	// submit. Empty redirects back to the form.
	SuccessRedirect string
	// MaxRows bounds the row index accepted for playlists and social links.
	MaxRows  int
	MaxBody  int64
	Form     curator.Config
	Registry *render.Registry
	OnSubmit curator.SubmitFunc
	Guard    GuardFunc
	CSRF     CSRFFunc
	Logger   *slog.Logger
	// StateOptions are applied to every form state the handler creates.
	StateOptions []formstate.Option
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		FormatParam:   defaultFormatParam,
		DefaultFormat: defaultFormat,
		MaxRows:       defaultMaxRows,
		MaxBody:       defaultMaxBody,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.FormatParam == "" {
		opts.FormatParam = defaultFormatParam
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = defaultFormat
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = defaultMaxRows
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = defaultMaxBody
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StateOptions != nil {
		opts.StateOptions = append([]formstate.Option{}, opts.StateOptions...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithFormatParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormatParam = name
	}
}

func WithDefaultFormat(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultFormat = name
	}
}

func WithSuccessRedirect(target string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SuccessRedirect = target
	}
}

func WithMaxRows(rows int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxRows = rows
	}
}

func WithMaxBody(bytes int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBody = bytes
	}
}

func WithFormConfig(cfg curator.Config) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Form = cfg
	}
}

func WithRegistry(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func WithSubmitHandler(fn curator.SubmitFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnSubmit = fn
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithCSRF(fn CSRFFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CSRF = fn
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithStateOptions(options ...formstate.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.StateOptions = append([]formstate.Option{}, options...)
	}
}
