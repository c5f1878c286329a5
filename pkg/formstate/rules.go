package formstate

// ValidateFunc inspects a stored value and returns an error whose message is
// shown for the field, or nil when the value passes.
type ValidateFunc func(value any) error

// Check is a named validation step.
type Check struct {
	Name string
	Fn   ValidateFunc
}

// Rules describe how a registered path is validated. Required holds the
// message reported for an empty value; an empty Required makes the field
// optional, in which case Validate checks still run against the empty value.
// Checks run in order and the first failure wins.
type Rules struct {
	Required string
	Validate []Check
}

// StringCheck adapts a string predicate into a Check using DisplayValue.
func StringCheck(name string, fn func(string) error) Check {
	return Check{
		Name: name,
		Fn: func(value any) error {
			return fn(DisplayValue(value))
		},
	}
}

func (r Rules) evaluate(value any) string {
	if isEmpty(value) && r.Required != "" {
		return r.Required
	}
	for _, check := range r.Validate {
		if check.Fn == nil {
			continue
		}
		if err := check.Fn(value); err != nil {
			if message := err.Error(); message != "" {
				return message
			}
			return "Invalid value"
		}
	}
	return ""
}
