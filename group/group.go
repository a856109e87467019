package group

import (
	"strings"

	"merchex/errs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxNameLength = 150

var (
	ErrGroupNotFound = errs.Errorf(errs.ENOTFOUND, "group: not found")
	ErrNameTaken     = errs.Errorf(errs.ECONFLICT, "group: name already taken")
)

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (g Group) Normalize() Group {
	g.Name = strings.TrimSpace(g.Name)
	return g
}

func (g Group) Validate() error {
	return errs.FromValidation(validation.ValidateStruct(&g,
		validation.Field(&g.Name, validation.Required, validation.RuneLength(0, maxNameLength)),
	))
}
