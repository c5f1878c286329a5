package curator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goliatone/go-curatorform/pkg/checks"
	"github.com/goliatone/go-curatorform/pkg/formstate"
)

var (
	structValidatorOnce sync.Once
	structValidator     *validator.Validate
)

func validatorInstance() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// Validate reports configuration mistakes such as malformed redirect targets.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("curator: invalid config %s: %v fails %q", fieldPath(fe.Namespace()), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("curator: invalid config: %w", err)
	}
	return nil
}

// validateProfile is the structural pass over the assembled profile. Field
// predicates already ran through the form state; this catches shape
// problems such as duplicate or unknown platforms in posted data.
func validateProfile(profile Profile) *formstate.ValidationError {
	err := validatorInstance().Struct(profile)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &formstate.ValidationError{Fields: map[string][]string{"": {err.Error()}}}
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if _, seen := fields[path]; seen {
			continue
		}
		fields[path] = []string{tagMessage(fe.Tag())}
	}
	return &formstate.ValidationError{Fields: fields}
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return checks.MessageRequired
	case "oneof":
		return "Unknown Platform"
	case "unique":
		return "Duplicate Platform"
	default:
		return "Invalid value"
	}
}

// fieldPath turns a validator namespace such as
// "Profile.socialLinks[1].name" into the dotted form path
// "socialLinks.1.name".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	rest = strings.ReplaceAll(rest, "[", ".")
	return strings.ReplaceAll(rest, "]", "")
}
