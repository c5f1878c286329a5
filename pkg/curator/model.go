package curator

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goliatone/go-curatorform/pkg/checks"
	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/model"
)

// ActionField is the input name action buttons post their value under.
const ActionField = "_action"

// Section names.
const (
	SectionPlaylists     = "playlists"
	SectionUser          = "user"
	SectionSocialButtons = "socialButtons"
	SectionSocialLinks   = "socialLinks"
)

var (
	requiredRule = model.ValidationRule{Kind: model.ValidationRuleRequired}
	linkRules    = []model.ValidationRule{
		requiredRule,
		{Kind: model.ValidationRuleSpecial, Params: map[string]string{"symbols": checks.SpecialSymbols}},
		{Kind: model.ValidationRuleURL},
	}
)

func linkCheck() formstate.Rules {
	return formstate.Rules{
		Required: checks.MessageRequired,
		Validate: []formstate.Check{
			formstate.StringCheck("checkSymbols", checks.NoSpecial),
			formstate.StringCheck("checkLink", checks.URL),
		},
	}
}

func costCheck() formstate.Rules {
	return formstate.Rules{
		Required: checks.MessageRequired,
		Validate: []formstate.Check{formstate.StringCheck("checkCost", checks.Cost)},
	}
}

// Model registers every field with the form state and returns the field
// model renderers consume.
func (f *Form) Model() model.FormModel {
	return f.build()
}

func (f *Form) build() model.FormModel {
	f.state.Unregister(FieldPlaylists)
	f.state.Unregister(FieldSocialLinks)
	if !f.cfg.PasswordField {
		f.state.Unregister(FieldPassword)
	}

	return model.FormModel{
		ID:          f.cfg.ID,
		Endpoint:    f.cfg.Endpoint,
		Method:      http.MethodPost,
		ActionField: ActionField,
		Sections: []model.Section{
			f.playlistSection(),
			f.userSection(),
			f.socialButtonSection(),
			f.socialLinkSection(),
		},
		Submit: model.Action{Kind: model.ActionSubmit, Value: string(model.ActionSubmit), Label: "Continue"},
	}
}

func (f *Form) field(path string, rules formstate.Rules, field model.Field) model.Field {
	reg := f.state.Register(path, rules)
	field.Name = reg.Name
	field.Value = reg.Value
	field.Errors = reg.Errors
	if field.Type == "" {
		field.Type = model.FieldTypeString
	}
	return field
}

func (f *Form) playlistSection() model.Section {
	section := model.Section{Name: SectionPlaylists}
	items := f.Playlists()
	if len(items) == 0 {
		section.Actions = []model.Action{appendPlaylistAction()}
		return section
	}

	for _, item := range items {
		prefix := fmt.Sprintf("%s.%d", FieldPlaylists, item.Index)
		group := model.Group{
			Key:   item.Key,
			Index: item.Index,
			Fields: []model.Field{
				f.field(prefix+".link", linkCheck(), model.Field{
					InputType:   "url",
					Required:    true,
					Placeholder: "Playlist Link",
					Validations: linkRules,
				}),
				f.field(prefix+".cost", costCheck(), model.Field{
					Type:        model.FieldTypeNumber,
					InputType:   "number",
					Required:    true,
					Placeholder: "Cost",
					Validations: []model.ValidationRule{
						requiredRule,
						{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "0"}},
					},
				}),
			},
		}
		if item.Index == len(items)-1 {
			group.Actions = append(group.Actions, appendPlaylistAction())
		}
		if action, ok := f.removePlaylistAction(item.Index); ok {
			group.Actions = append(group.Actions, action)
		}
		section.Groups = append(section.Groups, group)
	}
	return section
}

func appendPlaylistAction() model.Action {
	return model.Action{
		Kind:  model.ActionAppendPlaylist,
		Value: string(model.ActionAppendPlaylist),
		Label: "Add playlist",
	}
}

func (f *Form) removePlaylistAction(index int) (model.Action, bool) {
	if !f.CanRemovePlaylist(index) {
		return model.Action{}, false
	}
	action := model.Action{
		Kind:  model.ActionRemovePlaylist,
		Value: string(model.ActionRemovePlaylist) + ":" + strconv.Itoa(index),
		Label: "Remove playlist",
	}
	if index == 0 {
		if target := f.cfg.redirectOnRemoveFirst(); target != "" {
			action.Kind = model.ActionRedirect
			action.Href = target
		}
	}
	return action, true
}

func (f *Form) userSection() model.Section {
	fields := []model.Field{
		f.field(FieldName, formstate.Rules{Required: checks.MessageRequired}, model.Field{
			Label:       "Your Name",
			Placeholder: "David",
			Required:    true,
			Validations: []model.ValidationRule{requiredRule},
		}),
		f.field(FieldEmail, formstate.Rules{
			Required: checks.MessageRequired,
			Validate: []formstate.Check{formstate.StringCheck("checkEmail", checks.Email)},
		}, model.Field{
			Label:       "Your Email Address (and Login)",
			Placeholder: "For example, dmicofficial@gmail.com",
			InputType:   "email",
			Required:    true,
			Validations: []model.ValidationRule{
				requiredRule,
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": checks.EmailPattern.String()}},
			},
		}),
	}

	if f.cfg.PasswordField {
		fields = append(fields, f.field(FieldPassword, formstate.Rules{
			Required: checks.MessageRequired,
			Validate: []formstate.Check{formstate.StringCheck("checkPassword", checks.Password)},
		}, model.Field{
			Label:       "Password",
			Placeholder: "*****",
			InputType:   "password",
			Required:    true,
			Validations: []model.ValidationRule{
				requiredRule,
				{Kind: model.ValidationRulePassword, Params: map[string]string{
					"min": strconv.Itoa(checks.PasswordMinLength),
					"max": strconv.Itoa(checks.PasswordMaxLength),
				}},
			},
		}))
	}

	fields = append(fields,
		f.field(FieldPhone, formstate.Rules{
			Validate: []formstate.Check{formstate.StringCheck("checkPhoneNumber", checks.Phone)},
		}, model.Field{
			Label:       "Your Phone Number",
			Placeholder: "+1 555 123 4567",
			Description: "Optional",
			InputType:   "tel",
			Validations: []model.ValidationRule{{Kind: model.ValidationRulePhone}},
		}),
		f.field(FieldOrigin, formstate.Rules{Required: checks.MessageRequired}, model.Field{
			Label:       "Enter Your Origin",
			Placeholder: "For example, Los Angeles, California",
			Required:    true,
			Validations: []model.ValidationRule{requiredRule},
		}),
	)
	return model.Section{Name: SectionUser, Fields: fields}
}

func (f *Form) socialButtonSection() model.Section {
	section := model.Section{Name: SectionSocialButtons, Title: "Social Media Links"}
	for _, p := range f.AvailablePlatforms() {
		section.Actions = append(section.Actions, model.Action{
			Kind:  model.ActionAppendSocial,
			Value: string(model.ActionAppendSocial) + ":" + string(p),
			Label: p.Label(),
			Icon:  Icon(p),
		})
	}
	return section
}

func (f *Form) socialLinkSection() model.Section {
	section := model.Section{Name: SectionSocialLinks}
	for _, item := range f.SocialLinks() {
		prefix := fmt.Sprintf("%s.%d", FieldSocialLinks, item.Index)
		icon := Icon(item.Name)
		section.Groups = append(section.Groups, model.Group{
			Key:   item.Key,
			Index: item.Index,
			Icon:  icon,
			Fields: []model.Field{
				f.field(prefix+".name", formstate.Rules{Required: checks.MessageRequired}, model.Field{
					Type:     model.FieldTypeHidden,
					Required: true,
				}),
				f.field(prefix+".link", linkCheck(), model.Field{
					InputType:   "url",
					Required:    true,
					Placeholder: "Link",
					Validations: linkRules,
					Metadata:    map[string]string{"platform": string(item.Name)},
				}),
			},
			Actions: []model.Action{{
				Kind:  model.ActionRemoveSocial,
				Value: fmt.Sprintf("%s:%d:%s", model.ActionRemoveSocial, item.Index, item.Name),
				Label: "Remove " + item.Name.Label(),
				Icon:  icon,
			}},
		})
	}
	return section
}
