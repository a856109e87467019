package listing

import (
	"strings"

	"merchex/errs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxTitleLength = 100

var (
	ErrListingNotFound     = errs.Errorf(errs.ENOTFOUND, "listing: not found")
	ErrConstraintViolation = errs.Errorf(errs.EINTERNAL, "listing: constraint violation")
)

// Type is the closed set of listing types. Values are the stored codes.
type Type string

const (
	TypeRecord        Type = "REC"
	TypeClothing      Type = "CLO"
	TypePoster        Type = "POS"
	TypeMiscellaneous Type = "MIS"
)

// Types lists every listing type in display order.
var Types = []Type{TypeRecord, TypeClothing, TypePoster, TypeMiscellaneous}

// ParseType accepts a type code ("REC") or its symbolic name ("RECORD"),
// case-insensitively.
func ParseType(s string) (Type, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range Types {
		if s == string(t) || s == t.Name() {
			return t, true
		}
	}
	return "", false
}

func (t Type) Name() string {
	switch t {
	case TypeRecord:
		return "RECORD"
	case TypeClothing:
		return "CLOTHING"
	case TypePoster:
		return "POSTER"
	case TypeMiscellaneous:
		return "MISCELLANEOUS"
	}
	return ""
}

func (t Type) Label() string {
	switch t {
	case TypeRecord:
		return "Record"
	case TypeClothing:
		return "Clothing"
	case TypePoster:
		return "Poster"
	case TypeMiscellaneous:
		return "Miscellaneous"
	}
	return ""
}

func (t Type) Valid() bool {
	return t.Name() != ""
}

// Listing is a merchandise item. YearSold is not tied to Sold: either may be
// set without the other.
type Listing struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Sold        bool   `json:"sold"`
	YearSold    *int   `json:"year_sold"`
	Type        Type   `json:"type"`
	BandID      *int64 `json:"band"`
}

func (l Listing) HasBand() bool {
	return l.BandID != nil
}

func (l Listing) Normalize() Listing {
	l.Title = strings.TrimSpace(l.Title)
	l.Description = strings.TrimSpace(l.Description)
	if t, ok := ParseType(string(l.Type)); ok {
		l.Type = t
	}
	if l.BandID != nil && *l.BandID == 0 {
		l.BandID = nil
	}
	return l
}

// Validate checks the listing's own fields. Whether the referenced band
// exists is checked by the Usecase.
func (l Listing) Validate() error {
	return errs.FromValidation(validation.ValidateStruct(&l,
		validation.Field(&l.Title, validation.Required, validation.RuneLength(0, maxTitleLength)),
		validation.Field(&l.Description, validation.Required),
		validation.Field(&l.Type, validation.Required, validation.In(TypeRecord, TypeClothing, TypePoster, TypeMiscellaneous)),
		validation.Field(&l.BandID, validation.Min(int64(1))),
	))
}

// Patch holds the fields of an update. Nil fields keep their stored value.
// A BandID of 0 clears the band reference; ClearYearSold clears YearSold.
type Patch struct {
	Title         *string
	Description   *string
	Sold          *bool
	YearSold      *int
	ClearYearSold bool
	Type          *Type
	BandID        *int64
}

func (p Patch) Apply(l Listing) Listing {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Sold != nil {
		l.Sold = *p.Sold
	}
	if p.ClearYearSold {
		l.YearSold = nil
	} else if p.YearSold != nil {
		year := *p.YearSold
		l.YearSold = &year
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.BandID != nil {
		if *p.BandID == 0 {
			l.BandID = nil
		} else {
			id := *p.BandID
			l.BandID = &id
		}
	}
	return l
}
