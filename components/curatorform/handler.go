package curatorform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-curatorform/pkg/curator"
	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/model"
	"github.com/goliatone/go-curatorform/pkg/render"
	"github.com/goliatone/go-curatorform/pkg/renderers/jsonmodel"
	"github.com/goliatone/go-curatorform/pkg/renderers/vanilla"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// FieldErrors lets a submit handler reject a profile with messages keyed by
// field path (or JSON pointer). The form is re-rendered with the messages
// attached and a 422 status.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("curatorform: %d rejected fields", len(e))
}

type submitResponse struct {
	Data curator.Profile `json:"data"`
}

// rowPath matches the array paths the form posts.
var rowPath = regexp.MustCompile(`^(playlists\.(\d+)\.(link|cost)|socialLinks\.(\d+)\.(name|link))$`)

// DefaultRegistry returns a registry with the HTML and JSON renderers.
func DefaultRegistry() (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(jsonmodel.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			opts.Logger.Error("curator form renderers unavailable", "error", err)
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			})
		}
		opts.Registry = registry
	}
	if opts.OnSubmit == nil {
		opts.OnSubmit = func(context.Context, curator.Profile) error { return nil }
	}
	h := &handler{opts: opts}
	return http.HandlerFunc(h.serve)
}

type handler struct {
	opts Options
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	renderer, err := h.opts.Registry.Negotiate(r.URL.Query().Get(h.opts.FormatParam), r.Header.Get("Accept"), h.opts.DefaultFormat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotAcceptable)
		return
	}

	if r.Method != http.MethodPost {
		form, err := h.newForm(curator.DefaultValues(), nil)
		if err != nil {
			h.fail(w, err)
			return
		}
		h.render(w, r, renderer, form, http.StatusOK, nil)
		return
	}
	h.post(w, r, renderer)
}

func (h *handler) post(w http.ResponseWriter, r *http.Request, renderer render.Renderer) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var submitted *curator.Profile
	form, err := h.newForm(emptyValues(), func(ctx context.Context, profile curator.Profile) error {
		if err := h.opts.OnSubmit(ctx, profile); err != nil {
			return err
		}
		submitted = &profile
		return nil
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.load(form, r); err != nil {
		h.opts.Logger.Debug("curator form rejected post", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	action, err := curator.ParseAction(r.PostForm.Get(curator.ActionField))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if action.Kind != model.ActionSubmit {
		target, err := form.Apply(action)
		if err != nil {
			h.opts.Logger.Debug("curator form action rejected", "action", action.Kind, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if target != "" {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		h.render(w, r, renderer, form, http.StatusOK, nil)
		return
	}

	err = form.Submit(r.Context())
	var (
		verr   *formstate.ValidationError
		fields FieldErrors
		status HTTPError
	)
	switch {
	case err == nil:
		h.opts.Logger.Info("curator form submitted",
			"form", form.Config().ID,
			"playlists", len(submitted.Playlists),
			"social_links", len(submitted.SocialLinks),
		)
		h.success(w, r, renderer, *submitted)
	case errors.As(err, &verr):
		h.render(w, r, renderer, form, http.StatusUnprocessableEntity, nil)
	case errors.As(err, &fields):
		mapping := render.MapErrorPayload(form.Model(), fields)
		h.render(w, r, renderer, form, http.StatusUnprocessableEntity, &render.RenderOptions{
			Errors:     mapping.Fields,
			FormErrors: mapping.Form,
		})
	case errors.As(err, &status):
		http.Error(w, http.StatusText(status.StatusCode()), status.StatusCode())
	default:
		h.fail(w, err)
	}
}

func (h *handler) success(w http.ResponseWriter, r *http.Request, renderer render.Renderer, profile curator.Profile) {
	if renderer.ContentType() == "application/json" {
		payload, err := json.Marshal(submitResponse{Data: profile.Redacted()})
		if err != nil {
			h.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}
	target := h.opts.SuccessRedirect
	if target == "" {
		target = r.URL.Path
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *handler) newForm(values map[string]any, onSubmit curator.SubmitFunc) (*curator.Form, error) {
	if onSubmit == nil {
		onSubmit = h.opts.OnSubmit
	}
	state := formstate.New(values, h.opts.StateOptions...)
	return curator.New(state, onSubmit, h.opts.Form)
}

// emptyValues seeds a posted form: every row comes from the request, so no
// default playlist row is added.
func emptyValues() map[string]any {
	values := curator.DefaultValues()
	values[curator.FieldPlaylists] = []any{}
	return values
}

// load copies the known posted fields into the form state. Phone input goes
// through the same normalisation as typing into the field.
func (h *handler) load(form *curator.Form, r *http.Request) error {
	flat := make(map[string]string)
	for path, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		switch path {
		case curator.FieldName, curator.FieldEmail, curator.FieldPassword, curator.FieldOrigin:
			flat[path] = values[0]
			continue
		case curator.FieldPhone:
			continue
		}
		match := rowPath.FindStringSubmatch(path)
		if match == nil {
			continue
		}
		index := match[2] + match[4]
		n, err := strconv.Atoi(index)
		if err != nil || n >= h.opts.MaxRows {
			return fmt.Errorf("curatorform: row index out of range in %q", path)
		}
		flat[path] = values[0]
	}

	loader, ok := form.State().(interface{ Load(map[string]string) error })
	if !ok {
		return fmt.Errorf("curatorform: form state cannot load posted values")
	}
	if err := loader.Load(flat); err != nil {
		return err
	}
	if err := compactRows(form); err != nil {
		return err
	}
	if phone := r.PostForm.Get(curator.FieldPhone); phone != "" {
		return form.InputPhone(phone)
	}
	return nil
}

// compactRows drops array slots a sparse post left empty ("playlists.3"
// without "playlists.2").
func compactRows(form *curator.Form) error {
	state := form.State()
	for _, path := range []string{curator.FieldPlaylists, curator.FieldSocialLinks} {
		items := state.Fields(path)
		for i := len(items) - 1; i >= 0; i-- {
			if items[i].Value == nil {
				if err := state.RemoveArrayItem(path, items[i].Index); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, renderer render.Renderer, form *curator.Form, status int, extra *render.RenderOptions) {
	options := render.RenderOptions{}
	if extra != nil {
		options = *extra
	}
	if h.opts.CSRF != nil {
		if name, token := h.opts.CSRF(r); name != "" {
			options.Hidden = render.MergeHiddenFields(options.Hidden, render.CSRFToken(name, token))
		}
	}

	out, err := renderer.Render(r.Context(), form.Model(), options)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	h.opts.Logger.Error("curator form request failed", slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
