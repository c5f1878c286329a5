package model

import internalmodel "github.com/goliatone/go-curatorform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString = internalmodel.FieldTypeString
	FieldTypeNumber = internalmodel.FieldTypeNumber
	FieldTypeHidden = internalmodel.FieldTypeHidden
)

const (
	ValidationRuleRequired = internalmodel.ValidationRuleRequired
	ValidationRulePattern  = internalmodel.ValidationRulePattern
	ValidationRuleURL      = internalmodel.ValidationRuleURL
	ValidationRuleSpecial  = internalmodel.ValidationRuleSpecial
	ValidationRulePassword = internalmodel.ValidationRulePassword
	ValidationRulePhone    = internalmodel.ValidationRulePhone
	ValidationRuleMin      = internalmodel.ValidationRuleMin
)

type ActionKind = internalmodel.ActionKind

const (
	ActionAppendPlaylist = internalmodel.ActionAppendPlaylist
	ActionRemovePlaylist = internalmodel.ActionRemovePlaylist
	ActionRedirect       = internalmodel.ActionRedirect
	ActionAppendSocial   = internalmodel.ActionAppendSocial
	ActionRemoveSocial   = internalmodel.ActionRemoveSocial
	ActionSubmit         = internalmodel.ActionSubmit
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type Action = internalmodel.Action
type Group = internalmodel.Group
type Section = internalmodel.Section
type FormModel = internalmodel.FormModel

// Validate checks structural invariants of a form model.
func Validate(form FormModel) error {
	return internalmodel.Validate(form)
}
