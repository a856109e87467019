package user

import (
	"errors"
	"strings"
	"time"

	"merchex/errs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	maxUsernameLength = 150
	maxEmailLength    = 254
	minPasswordLength = 8
)

var (
	ErrUserNotFound  = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrUsernameTaken = errs.Errorf(errs.ECONFLICT, "user: username already taken")
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Password     string    `json:"-"`
	PasswordHash string    `json:"-"`
	Groups       []int64   `json:"groups"`
	DateJoined   time.Time `json:"date_joined"`
}

func (u User) Normalize() User {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	if u.Groups == nil {
		u.Groups = []int64{}
	}
	return u
}

// Validate checks the profile fields. A password is only checked when set,
// since stored users carry a hash instead. Password never appears in JSON, so
// its violation is keyed explicitly.
func (u User) Validate() error {
	verrs := validation.Errors{
		"password": validation.Validate(u.Password, validation.RuneLength(minPasswordLength, 0)),
	}
	err := validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required, validation.RuneLength(0, maxUsernameLength)),
		validation.Field(&u.Email, validation.RuneLength(0, maxEmailLength), is.EmailFormat),
		validation.Field(&u.Groups, validation.Each(validation.Min(int64(1)))),
	)
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for name, ferr := range fieldErrs {
			verrs[name] = ferr
		}
	} else if err != nil {
		return err
	}
	return errs.FromValidation(verrs.Filter())
}

type Patch struct {
	Username *string
	Email    *string
	Password *string
	Groups   *[]int64
}

func (p Patch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Groups != nil {
		u.Groups = append([]int64{}, (*p.Groups)...)
	}
	return u
}
