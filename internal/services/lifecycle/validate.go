package lifecycle

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"resaleops/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateDraft reports every failing field in one ValidationError.
func validateDraft(d domain.Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validationf("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	sort.Strings(msgs)
	return domain.Validationf("%s", strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must have at least " + e.Param() + " entries"
	case "max":
		return field + " must be at most " + e.Param() + " long"
	case "oneof":
		return field + " must be one of [" + e.Param() + "]"
	case "gte", "lte":
		return field + " must be " + e.Tag() + " " + e.Param()
	default:
		return field + " is invalid (" + e.Tag() + ")"
	}
}
