package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-curatorform/pkg/checks"
	"github.com/goliatone/go-curatorform/pkg/curator"
	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/model"
)

const doneOption = "Done"

// Filler walks a curator form through terminal prompts using the same
// operations the HTML form posts: it appends and fills playlist rows, the
// profile fields and social links, then submits.
type Filler struct {
	driver PromptDriver
	format OutputFormat
	theme  Theme
}

// New constructs a Filler with defaults (survey driver, JSON output).
func New(options ...Option) (*Filler, error) {
	f := &Filler{
		driver: NewSurveyDriver(nil),
		format: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if _, err := ParseOutputFormat(string(f.format)); err != nil {
		return nil, err
	}
	return f, nil
}

// ContentType reports the media type Encode produces.
func (f *Filler) ContentType() string {
	switch f.format {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Fill prompts for every field and submits the form. Fields that still fail
// on submit are reported and asked again until the submit succeeds or the
// user aborts.
func (f *Filler) Fill(ctx context.Context, form *curator.Form) error {
	if form == nil {
		return errors.New("tui: form is required")
	}
	if err := f.playlists(ctx, form); err != nil {
		return err
	}
	if section, ok := form.Model().Section(curator.SectionUser); ok {
		for _, field := range section.Fields {
			if err := f.prompt(ctx, form, field, field.Label); err != nil {
				return err
			}
		}
	}
	if err := f.socials(ctx, form); err != nil {
		return err
	}

	for {
		err := form.Submit(ctx)
		var verr *formstate.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fm := form.Model()
		for _, path := range verr.Paths() {
			field, ok := fm.Field(path)
			if !ok {
				return err
			}
			f.info(ctx, fmt.Sprintf("%s%s: %s", f.theme.ErrorPrefix, path, verr.Message(path)))
			if err := f.prompt(ctx, form, field, promptLabel(field)); err != nil {
				return err
			}
		}
	}
}

func (f *Filler) playlists(ctx context.Context, form *curator.Form) error {
	for index := 0; ; index++ {
		if index >= len(form.Playlists()) {
			if err := form.AppendPlaylist(); err != nil {
				return err
			}
		}
		for _, name := range []string{"link", "cost"} {
			path := fmt.Sprintf("%s.%d.%s", curator.FieldPlaylists, index, name)
			field, ok := form.Model().Field(path)
			if !ok {
				return fmt.Errorf("tui: missing field %s", path)
			}
			if err := f.prompt(ctx, form, field, promptLabel(field)); err != nil {
				return err
			}
		}
		more, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Add another playlist?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (f *Filler) socials(ctx context.Context, form *curator.Form) error {
	for {
		available := form.AvailablePlatforms()
		if len(available) == 0 {
			return nil
		}
		options := make([]string, 0, len(available)+1)
		for _, p := range available {
			options = append(options, p.Label())
		}
		options = append(options, doneOption)

		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      "Social Media Links",
			Options:      options,
			DefaultIndex: len(options) - 1,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(available) {
			return nil
		}
		if err := form.AppendSocial(available[idx]); err != nil {
			return err
		}

		index := len(form.SocialLinks()) - 1
		path := fmt.Sprintf("%s.%d.link", curator.FieldSocialLinks, index)
		field, ok := form.Model().Field(path)
		if !ok {
			return fmt.Errorf("tui: missing field %s", path)
		}
		if err := f.prompt(ctx, form, field, available[idx].Label()+" "+field.Placeholder); err != nil {
			return err
		}
	}
}

// prompt asks for one field until its checks pass, then stores the answer.
func (f *Filler) prompt(ctx context.Context, form *curator.Form, field model.Field, label string) error {
	validate := validatorFor(field)
	for {
		cfg := InputConfig{Message: label, Default: field.Value, Help: field.Description}
		var (
			answer string
			err    error
		)
		if field.InputType == "password" {
			answer, err = f.driver.Password(ctx, cfg)
		} else {
			answer, err = f.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)

		check := answer
		if field.Name == curator.FieldPhone && answer != "" {
			check = formatPhone(answer)
		}
		if err := validate(check); err != nil {
			f.info(ctx, fmt.Sprintf("%sInvalid %s: %v", f.theme.ErrorPrefix, field.Name, err))
			continue
		}
		return form.SetValue(field.Name, answer)
	}
}

func (f *Filler) info(ctx context.Context, msg string) {
	_ = f.driver.Info(ctx, msg)
}

// formatPhone previews what Form.InputPhone will store.
func formatPhone(raw string) string {
	if formatted := checks.FormatAsYouType(strings.Replace(raw, " ", "", 1)); formatted != "" {
		return formatted
	}
	return raw
}

// validatorFor rebuilds a field's checks from the rules advertised in the
// model, in the order the form applies them.
func validatorFor(field model.Field) func(string) error {
	var steps []func(string) error
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRulePattern:
			steps = append(steps, checks.Email)
		case model.ValidationRuleSpecial:
			steps = append(steps, checks.NoSpecial)
		case model.ValidationRuleURL:
			steps = append(steps, checks.URL)
		case model.ValidationRulePassword:
			steps = append(steps, checks.Password)
		case model.ValidationRulePhone:
			steps = append(steps, checks.Phone)
		case model.ValidationRuleMin:
			steps = append(steps, checks.Cost)
		}
	}
	return func(value string) error {
		if value == "" {
			if field.Required {
				return checks.ErrRequired
			}
			return nil
		}
		for _, step := range steps {
			if err := step(value); err != nil {
				return err
			}
		}
		return nil
	}
}

func promptLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	label := field.Placeholder
	if label == "" {
		label = field.Name
	}
	parts := strings.Split(field.Name, ".")
	if len(parts) == 3 {
		if index, err := strconv.Atoi(parts[1]); err == nil {
			return fmt.Sprintf("%s #%d", label, index+1)
		}
	}
	return label
}

// Encode serializes profile in the configured format. The password is
// redacted in every format.
func (f *Filler) Encode(profile curator.Profile) ([]byte, error) {
	profile = profile.Redacted()
	switch f.format {
	case OutputFormatYAML:
		return yaml.Marshal(profile)
	case OutputFormatPrettyText:
		return prettyProfile(profile)
	default:
		out, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
}

func prettyProfile(profile curator.Profile) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"Name", profile.Name},
		{"Email", profile.Email},
		{"Password", profile.Password},
		{"Phone", profile.Phone},
		{"Origin", profile.Origin},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	for i, playlist := range profile.Playlists {
		fmt.Fprintf(w, "Playlist %d:\t%s (cost %s)\n", i+1, playlist.Link, strconv.FormatFloat(playlist.Cost, 'f', -1, 64))
	}
	for _, link := range profile.SocialLinks {
		fmt.Fprintf(w, "%s:\t%s\n", link.Name.Label(), link.Link)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
