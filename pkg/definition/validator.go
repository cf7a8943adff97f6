package definition

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	pathPattern = regexp.MustCompile(`^/[^\s]*$`)
	namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// toAnySlice adapts a string slice for validation.In.
func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Validate checks a custom API definition at registration time.
// Request-time code never sees an invalid definition.
func (a *CustomAPI) Validate() error {
	if err := validation.ValidateStruct(a,
		validation.Field(&a.Method, validation.Required, validation.In(toAnySlice(Methods)...)),
		validation.Field(&a.Path, validation.Required, validation.Match(pathPattern)),
		validation.Field(&a.StatusCode, validation.Required, validation.Min(100), validation.Max(599)),
	); err != nil {
		return err
	}
	if a.Conditional != nil {
		return a.Conditional.Validate()
	}
	return nil
}

// Validate checks a resource definition at registration time.
func (r *Resource) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Match(namePattern)),
		validation.Field(&r.Fields, validation.Required),
	); err != nil {
		return err
	}
	for _, f := range r.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single schema field.
func (f Field) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Type, validation.Required, validation.In(toAnySlice(FieldTypes)...)),
	)
}

// Validate checks a conditional rule.
func (c *ConditionalRule) Validate() error {
	return validation.ValidateStruct(&c.Condition,
		validation.Field(&c.Condition.Type, validation.Required, validation.In(toAnySlice(ConditionTypes)...)),
		validation.Field(&c.Condition.Operator,
			validation.When(c.Condition.Type != ConditionExpression,
				validation.Required, validation.In(toAnySlice(Operators)...))),
		validation.Field(&c.Condition.Expression,
			validation.When(c.Condition.Type == ConditionExpression, validation.Required)),
		validation.Field(&c.Condition.DependentAPIID,
			validation.When(c.Condition.Type == ConditionDependentAPI, validation.Required)),
	)
}
