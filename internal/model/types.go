package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeHidden FieldType = "hidden"
)

const (
	ValidationRuleRequired = "required"
	ValidationRulePattern  = "pattern"
	ValidationRuleURL      = "url"
	ValidationRuleSpecial  = "noSpecial"
	ValidationRulePassword = "password"
	ValidationRulePhone    = "phone"
	ValidationRuleMin      = "min"
)

// ValidationRule represents a single validation constraint applied to a field.
// Renderers may translate the canonical kinds into HTML attributes; the
// authoritative check always runs server-side through the form controller.
// Params carry string values (Params["value"], Params["pattern"]) to keep
// JSON snapshots stable.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input. Name is the dotted path the value is
// posted under (for example "playlists.0.link").
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	InputType   string            `json:"inputType,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Value       string            `json:"value"`
	Errors      []string          `json:"errors,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ActionKind enumerates the buttons a form can post back.
type ActionKind string

const (
	ActionAppendPlaylist ActionKind = "append-playlist"
	ActionRemovePlaylist ActionKind = "remove-playlist"
	ActionRedirect       ActionKind = "redirect"
	ActionAppendSocial   ActionKind = "append-social"
	ActionRemoveSocial   ActionKind = "remove-social"
	ActionSubmit         ActionKind = "submit"
)

// Action is a control rendered as a button (or link for redirects). Value is
// what the button posts under the action input name.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Value string     `json:"value,omitempty"`
	Label string     `json:"label,omitempty"`
	Icon  string     `json:"icon,omitempty"`
	Href  string     `json:"href,omitempty"`
}

// Group is one row of a repeated field group. Key is stable for the lifetime
// of the row and is independent of its index.
type Group struct {
	Key     string   `json:"key"`
	Index   int      `json:"index"`
	Icon    string   `json:"icon,omitempty"`
	Fields  []Field  `json:"fields"`
	Actions []Action `json:"actions,omitempty"`
}

// Section partitions the form into visual blocks. A section carries plain
// fields, repeated groups, free-standing actions, or a mix.
type Section struct {
	Name    string   `json:"name"`
	Title   string   `json:"title,omitempty"`
	Fields  []Field  `json:"fields,omitempty"`
	Groups  []Group  `json:"groups,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	ActionField string            `json:"actionField"`
	Sections    []Section         `json:"sections"`
	Submit      Action            `json:"submit"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Fields returns every field of the form in render order, descending into
// groups.
func (f FormModel) Fields() []Field {
	var out []Field
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
		for _, group := range section.Groups {
			out = append(out, group.Fields...)
		}
	}
	return out
}

// Field looks up a field by its dotted path.
func (f FormModel) Field(path string) (Field, bool) {
	for _, field := range f.Fields() {
		if field.Name == path {
			return field, true
		}
	}
	return Field{}, false
}

// Section looks up a section by name.
func (f FormModel) Section(name string) (Section, bool) {
	for _, section := range f.Sections {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}
