package curator

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/goliatone/go-curatorform/pkg/checks"
	"github.com/goliatone/go-curatorform/pkg/formstate"
)

// Field paths.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPhone       = "phone"
	FieldOrigin      = "origin"
	FieldPlaylists   = "playlists"
	FieldSocialLinks = "socialLinks"
)

// SubmitFunc receives the validated profile.
type SubmitFunc func(ctx context.Context, profile Profile) error

// Form is the curator information form bound to a form state.
type Form struct {
	state    formstate.FormState
	cfg      Config
	onSubmit SubmitFunc
}

// SocialItem is a social row as seen by renderers.
type SocialItem struct {
	Key   string
	Index int
	Name  Platform
	Link  string
}

// DefaultValues returns the values a fresh form starts with: empty text
// fields and a single empty playlist row.
func DefaultValues() map[string]any {
	return map[string]any{
		FieldName:        "",
		FieldEmail:       "",
		FieldPassword:    "",
		FieldPhone:       "",
		FieldOrigin:      "",
		FieldPlaylists:   []any{emptyPlaylist()},
		FieldSocialLinks: []any{},
	}
}

func emptyPlaylist() map[string]any {
	return map[string]any{"link": "", "cost": math.NaN()}
}

// New binds a form to state. The configuration is validated up front since a
// bad configuration is a wiring mistake rather than user input.
func New(state formstate.FormState, onSubmit SubmitFunc, cfg Config) (*Form, error) {
	if state == nil {
		return nil, ErrStateRequired
	}
	if onSubmit == nil {
		return nil, ErrSubmitRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Form{
		state:    state,
		cfg:      cfg.withDefaults(),
		onSubmit: onSubmit,
	}
	for _, path := range []string{FieldPlaylists, FieldSocialLinks} {
		if _, ok := state.Value(path); !ok {
			if err := state.SetValue(path, []any{}); err != nil {
				return nil, fmt.Errorf("curator: init %s: %w", path, err)
			}
		}
	}
	f.build()
	return f, nil
}

// Config returns the effective configuration.
func (f *Form) Config() Config {
	return f.cfg
}

// State exposes the underlying form state.
func (f *Form) State() formstate.FormState {
	return f.state
}

// Playlists lists the playlist rows.
func (f *Form) Playlists() []formstate.Item {
	return f.state.Fields(FieldPlaylists)
}

// SocialLinks lists the social rows.
func (f *Form) SocialLinks() []SocialItem {
	items := f.state.Fields(FieldSocialLinks)
	out := make([]SocialItem, 0, len(items))
	for _, item := range items {
		out = append(out, SocialItem{
			Key:   item.Key,
			Index: item.Index,
			Name:  Platform(formstate.DisplayValue(item.Value["name"])),
			Link:  formstate.DisplayValue(item.Value["link"]),
		})
	}
	return out
}

// AvailablePlatforms lists, in button order, the platforms that have no
// social row yet. It is derived from the social rows on every call.
func (f *Form) AvailablePlatforms() []Platform {
	used := make(map[Platform]struct{})
	for _, item := range f.SocialLinks() {
		used[item.Name] = struct{}{}
	}
	out := make([]Platform, 0, len(buttonOrder))
	for _, p := range buttonOrder {
		if _, taken := used[p]; !taken {
			out = append(out, p)
		}
	}
	return out
}

// AppendPlaylist adds an empty playlist row at the end.
func (f *Form) AppendPlaylist() error {
	if err := f.state.AppendArrayItem(FieldPlaylists, emptyPlaylist()); err != nil {
		return fmt.Errorf("curator: append playlist: %w", err)
	}
	f.build()
	return nil
}

// CanRemovePlaylist reports whether a remove control is offered for index.
func (f *Form) CanRemovePlaylist(index int) bool {
	if index < 0 || index >= len(f.Playlists()) {
		return false
	}
	return index != 0 || !f.cfg.denyFirstRemove()
}

// RemovePlaylist removes the row at index. For the first row the
// configuration may deny removal (ErrRemoveDenied) or replace it with a
// redirect, in which case the target is returned and nothing is removed.
func (f *Form) RemovePlaylist(index int) (string, error) {
	if index < 0 || index >= len(f.Playlists()) {
		return "", fmt.Errorf("curator: remove playlist %d: %w", index, ErrIndexOutOfRange)
	}
	if index == 0 {
		if f.cfg.denyFirstRemove() {
			return "", ErrRemoveDenied
		}
		if target := f.cfg.redirectOnRemoveFirst(); target != "" {
			return target, nil
		}
	}
	if err := f.state.RemoveArrayItem(FieldPlaylists, index); err != nil {
		return "", fmt.Errorf("curator: remove playlist: %w", err)
	}
	f.build()
	return "", nil
}

// AppendSocial adds an empty row for p; p must still be available.
func (f *Form) AppendSocial(p Platform) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	if !slices.Contains(f.AvailablePlatforms(), p) {
		return fmt.Errorf("%w: %s", ErrPlatformUnavailable, p)
	}
	if err := f.state.AppendArrayItem(FieldSocialLinks, map[string]any{"name": string(p), "link": ""}); err != nil {
		return fmt.Errorf("curator: append social: %w", err)
	}
	f.build()
	return nil
}

// RemoveSocial removes the row at index, which must hold p. p becomes
// available again.
func (f *Form) RemoveSocial(index int, p Platform) error {
	items := f.SocialLinks()
	if index < 0 || index >= len(items) {
		return fmt.Errorf("curator: remove social %d: %w", index, ErrIndexOutOfRange)
	}
	if items[index].Name != p {
		return fmt.Errorf("%w: row %d is %q, not %q", ErrPlatformMismatch, index, items[index].Name, p)
	}
	if err := f.state.RemoveArrayItem(FieldSocialLinks, index); err != nil {
		return fmt.Errorf("curator: remove social: %w", err)
	}
	f.build()
	return nil
}

// InputPhone applies a keystroke's worth of phone input: the raw value is
// stored, then the first space is dropped and the rest reformatted; a
// non-empty formatted value replaces the stored one.
func (f *Form) InputPhone(raw string) error {
	if err := f.state.SetValue(FieldPhone, raw); err != nil {
		return fmt.Errorf("curator: set phone: %w", err)
	}
	cleared := strings.Replace(raw, " ", "", 1)
	if formatted := checks.FormatAsYouType(cleared); formatted != "" {
		if err := f.state.SetValue(FieldPhone, formatted); err != nil {
			return fmt.Errorf("curator: set phone: %w", err)
		}
	}
	return nil
}

// SetValue writes a plain field value. Phone input goes through InputPhone.
func (f *Form) SetValue(path string, value string) error {
	if path == FieldPhone {
		return f.InputPhone(value)
	}
	if err := f.state.SetValue(path, value); err != nil {
		return fmt.Errorf("curator: set %s: %w", path, err)
	}
	return nil
}

// Submit validates every field and row. When everything passes the submit
// handler receives the assembled profile; otherwise a
// *formstate.ValidationError is returned and the handler is not called.
func (f *Form) Submit(ctx context.Context) error {
	f.build()
	return f.state.Submit(ctx, func(ctx context.Context, values map[string]any) error {
		profile, err := formstate.Decode[Profile](values)
		if err != nil {
			return fmt.Errorf("curator: %w", err)
		}
		profile = f.normalize(profile)

		if verr := validateProfile(profile); verr != nil {
			for _, path := range verr.Paths() {
				f.state.SetError(path, verr.Message(path))
			}
			return verr
		}
		return f.onSubmit(ctx, profile)
	})
}

func (f *Form) normalize(profile Profile) Profile {
	if !f.cfg.PasswordField {
		profile.Password = ""
	}
	if profile.Playlists == nil {
		profile.Playlists = []Playlist{}
	}
	if profile.SocialLinks == nil {
		profile.SocialLinks = []SocialLink{}
	}
	return profile
}
