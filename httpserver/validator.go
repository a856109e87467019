package httpserver

import (
	"errors"
	"reflect"
	"strings"

	"merchex/errs"

	"github.com/go-playground/validator/v10"
)

// CustomValidator checks request shapes. Domain rules are enforced by the
// usecases; this only rejects bodies that are missing whole fields.
type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Errorf(errs.EINVALID, "validation error")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		fields[field] = fieldMessage(fe)
	}
	return errs.Invalid(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be blank"
	case "max":
		return "must be no more than " + fe.Param() + " characters"
	case "gt", "min":
		return "must be at least " + fe.Param()
	}
	return "failed on " + fe.Tag()
}
