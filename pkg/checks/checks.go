package checks

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MessageRequired = "Required"
	MessageEmail    = "Incorrect Email Address"
	MessagePassword = "Password must be at least 8 characters long and contain at least one letter and one digit"
	MessageSpecial  = "Link contains special symbols"
	MessageURL      = "Incorrect Link"
	MessageCost     = "Incorrect Cost"
	MessagePhone    = "Incorrect Phone Number"
)

// Password limits.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
)

// SpecialSymbols lists the characters a link may not contain.
const SpecialSymbols = "<>\"'`{}|\\^"

// EmailPattern is the accepted email shape.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RuleError is a failed predicate. Rule names the check, Message is the text
// displayed for the field.
type RuleError struct {
	Rule    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

var (
	ErrRequired      = &RuleError{Rule: "required", Message: MessageRequired}
	ErrEmail         = &RuleError{Rule: "checkEmail", Message: MessageEmail}
	ErrPassword      = &RuleError{Rule: "checkPassword", Message: MessagePassword}
	ErrSpecialSymbol = &RuleError{Rule: "checkSymbols", Message: MessageSpecial}
	ErrURL           = &RuleError{Rule: "checkLink", Message: MessageURL}
	ErrCost          = &RuleError{Rule: "checkCost", Message: MessageCost}
	ErrPhone         = &RuleError{Rule: "checkPhoneNumber", Message: MessagePhone}
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func urlValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Email checks value against EmailPattern.
func Email(value string) error {
	if !EmailPattern.MatchString(value) {
		return ErrEmail
	}
	return nil
}

// Password requires PasswordMinLength..PasswordMaxLength characters, at least
// one letter and one digit, and no whitespace.
func Password(value string) error {
	length := len([]rune(value))
	if length < PasswordMinLength || length > PasswordMaxLength {
		return ErrPassword
	}

	var letter, digit bool
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			return ErrPassword
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrPassword
	}
	return nil
}

// NoSpecial rejects values containing whitespace or any of SpecialSymbols.
func NoSpecial(value string) error {
	if strings.ContainsAny(value, SpecialSymbols) {
		return ErrSpecialSymbol
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return ErrSpecialSymbol
	}
	return nil
}

// URL requires an absolute http(s) URL with a host.
func URL(value string) error {
	if err := urlValidator().Var(value, "http_url"); err != nil {
		return ErrURL
	}
	return nil
}

// Link applies the shared playlist and social link rules in display order.
func Link(value string) error {
	if err := NoSpecial(value); err != nil {
		return err
	}
	return URL(value)
}

// Cost accepts a non-negative finite number. An empty value is treated as
// unset and passes; pair with a required rule to demand a value.
func Cost(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
		return ErrCost
	}
	return nil
}
