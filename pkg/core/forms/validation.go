package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// FieldError describes one rejected form field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a form is missing required input.
// Nothing has been sent to a store when it is returned.
type ValidationError struct {
	Kind   model.Kind
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + " " + f.Message
	}
	return fmt.Sprintf("invalid %s form: %s", e.Kind, strings.Join(msgs, "; "))
}

// Has reports whether field was rejected
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// enumRules maps a validation tag to the vocabulary it accepts.
// Parsers let legacy values through where the model has a mapping for them.
var enumRules = map[string]struct {
	valid  func(string) bool
	values []string
}{
	"emergency_category": {
		valid:  func(s string) bool { return model.ParseEmergencyCategory(s).IsValid() },
		values: model.Values(model.AllEmergencyCategories()),
	},
	"severity": {
		valid:  func(s string) bool { return model.Severity(normalizeEnum(s)).IsValid() },
		values: model.Values(model.AllSeverities()),
	},
	"emergency_status": {
		valid:  func(s string) bool { return model.EmergencyStatus(normalizeEnum(s)).IsValid() },
		values: model.Values(model.AllEmergencyStatuses()),
	},
	"specialization": {
		valid:  func(s string) bool { return model.Specialization(normalizeEnum(s)).IsValid() },
		values: model.Values(model.AllSpecializations()),
	},
	"skill": {
		valid:  func(s string) bool { return model.Skill(normalizeEnum(s)).IsValid() },
		values: model.Values(model.AllSkills()),
	},
	"experience_level": {
		valid:  func(s string) bool { return model.ParseExperienceLevel(s).IsValid() },
		values: model.Values(model.AllExperienceLevels()),
	},
	"availability": {
		valid:  func(s string) bool { return model.ParseAvailability(s).IsValid() },
		values: model.Values(model.AllAvailabilities()),
	},
	"resource_category": {
		valid:  func(s string) bool { return model.ResourceCategory(normalizeEnum(s)).IsValid() },
		values: model.Values(model.AllResourceCategories()),
	},
	"stock_availability": {
		valid:  func(s string) bool { return model.ResourceAvailability(normalizeEnum(s)).IsValid() },
		values: model.Values(model.AllResourceAvailabilities()),
	},
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their form name rather than the Go field name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	for tag, rule := range enumRules {
		valid := rule.valid
		mustRegister(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}

	// Blank or unparseable counts are treated as unset, only negatives are rejected
	mustRegister("nonnegative", func(fl validator.FieldLevel) bool {
		n := ParseOptionalInt(fl.Field().String())
		return n == nil || *n >= 0
	})

	mustRegister("coordinates", func(fl validator.FieldLevel) bool {
		_, err := ParseCoordinates(fl.Field().String())
		return err == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validateForm runs the struct tags of form and converts failures to a ValidationError
func validateForm(kind model.Kind, form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate %s form: %w", kind, err)
	}

	out := &ValidationError{Kind: kind}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldName(fe), Message: message(fe)})
	}
	return out
}

// fieldName strips the element index dive adds, so "skills[2]" reports as "skills"
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i > 0 {
		return name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	if rule, ok := enumRules[fe.Tag()]; ok {
		return fmt.Sprintf("has invalid value %q (expected one of %s)", fe.Value(), strings.Join(rule.values, ", "))
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "needs at least one selection"
		}
		return "is too short"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "nonnegative":
		return "must not be negative"
	case "coordinates":
		return `must be "lat, lng" in decimal degrees`
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// trimFields trims surrounding whitespace from every string field of the struct ptr points to,
// so blank input fails "required"
func trimFields(ptr any) {
	v := reflect.ValueOf(ptr).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
