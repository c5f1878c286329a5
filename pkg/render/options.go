package render

// RenderOptions carry per-request data renderers apply on top of the form
// model without mutating it.
type RenderOptions struct {
	// Method overrides the method declared by the form model.
	Method string
	// Values override rendered control values by dotted field path
	// ("playlists.0.link").
	Values map[string]any
	// Errors are server-side messages keyed by field path. They are merged
	// with the errors already carried by the model fields.
	Errors map[string][]string
	// FormErrors are messages that belong to no single field.
	FormErrors []string
	// Hidden lists extra hidden inputs, typically a CSRF token.
	Hidden map[string]string
}
