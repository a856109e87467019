package errs

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FromValidation converts the result of an ozzo-validation run into an
// EINVALID error keyed by field name. Nil stays nil and internal rule
// failures are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for name, ferr := range verrs {
		if ferr == nil {
			continue
		}
		var internal validation.InternalError
		if errors.As(ferr, &internal) {
			return internal
		}
		fields[name] = ferr.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return Invalid(fields)
}

// Merge adds the violations carried by err into fields. It returns err back
// when err is not a field violation so callers can stop early.
func Merge(fields map[string]string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) || e.Code != EINVALID || len(e.Fields) == 0 {
		return err
	}
	for name, msg := range e.Fields {
		fields[name] = msg
	}
	return nil
}
