package httpserver

import (
	"strconv"

	"merchex/band"
	"merchex/contact"
	"merchex/errs"
	"merchex/group"
	"merchex/listing"
	"merchex/user"

	"github.com/labstack/echo/v4"
)

var errInvalidBody = errs.Errorf(errs.EINVALID, "invalid request body")

// bindAndValidate decodes the request body into req and checks its shape.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errInvalidBody
	}
	return c.Validate(req)
}

// idParam reads the :id path parameter. A malformed id cannot name a
// stored record, so it is reported as notFound.
func idParam(c echo.Context, notFound error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// BandRequest is the body of POST and PUT /api/bands. Every required field
// must be present; an absent official_homepage is cleared on PUT.
type BandRequest struct {
	Name             *string `json:"name" validate:"required"`
	Genre            *string `json:"genre" validate:"required"`
	Biography        *string `json:"biography" validate:"required"`
	YearFormed       *int    `json:"year_formed" validate:"required"`
	Active           *bool   `json:"active"`
	OfficialHomepage *string `json:"official_homepage"`
}

func (r BandRequest) ToBand() band.Band {
	b := band.Band{
		Name:       deref(r.Name),
		Genre:      band.Genre(deref(r.Genre)),
		Biography:  deref(r.Biography),
		YearFormed: deref(r.YearFormed),
		Active:     true,
	}
	if r.Active != nil {
		b.Active = *r.Active
	}
	b.OfficialHomepage = deref(r.OfficialHomepage)
	return b
}

func (r BandRequest) ToPatch() band.Patch {
	p := BandPatchRequest(r).ToPatch()
	if p.OfficialHomepage == nil {
		p.OfficialHomepage = new(string)
	}
	return p
}

// BandPatchRequest is the body of PATCH /api/bands/:id.
type BandPatchRequest struct {
	Name             *string `json:"name"`
	Genre            *string `json:"genre"`
	Biography        *string `json:"biography"`
	YearFormed       *int    `json:"year_formed"`
	Active           *bool   `json:"active"`
	OfficialHomepage *string `json:"official_homepage"`
}

func (r BandPatchRequest) ToPatch() band.Patch {
	p := band.Patch{
		Name:             r.Name,
		Biography:        r.Biography,
		YearFormed:       r.YearFormed,
		Active:           r.Active,
		OfficialHomepage: r.OfficialHomepage,
	}
	if r.Genre != nil {
		g := band.Genre(*r.Genre)
		p.Genre = &g
	}
	return p
}

// ListingRequest is the body of POST and PUT /api/listings. On PUT an absent
// band or year_sold clears the stored value.
type ListingRequest struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Sold        *bool   `json:"sold"`
	YearSold    *int    `json:"year_sold"`
	Type        *string `json:"type" validate:"required"`
	Band        *int64  `json:"band"`
}

func (r ListingRequest) ToListing() listing.Listing {
	return listing.Listing{
		Title:       deref(r.Title),
		Description: deref(r.Description),
		Sold:        deref(r.Sold),
		YearSold:    r.YearSold,
		Type:        listing.Type(deref(r.Type)),
		BandID:      r.Band,
	}
}

func (r ListingRequest) ToPatch() listing.Patch {
	p := ListingPatchRequest(r).ToPatch()
	if r.YearSold == nil {
		p.ClearYearSold = true
	}
	if r.Band == nil {
		p.BandID = new(int64)
	}
	return p
}

// ListingPatchRequest is the body of PATCH /api/listings/:id. A band of 0
// detaches the listing.
type ListingPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Sold        *bool   `json:"sold"`
	YearSold    *int    `json:"year_sold"`
	Type        *string `json:"type"`
	Band        *int64  `json:"band"`
}

func (r ListingPatchRequest) ToPatch() listing.Patch {
	p := listing.Patch{
		Title:       r.Title,
		Description: r.Description,
		Sold:        r.Sold,
		YearSold:    r.YearSold,
		BandID:      r.Band,
	}
	if r.Type != nil {
		t := listing.Type(*r.Type)
		p.Type = &t
	}
	return p
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r ContactRequest) ToMessage() contact.Message {
	return contact.Message{
		Name:  r.Name,
		Email: r.Email,
		Body:  r.Message,
	}
}

// UserRequest is the body of POST and PUT /api/users. On PUT an absent
// email or groups list is cleared and an absent password keeps the old one.
type UserRequest struct {
	Username *string  `json:"username" validate:"required"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Groups   *[]int64 `json:"groups"`
}

func (r UserRequest) ToUser() user.User {
	u := user.User{
		Username: deref(r.Username),
		Email:    deref(r.Email),
		Password: deref(r.Password),
	}
	if r.Groups != nil {
		u.Groups = *r.Groups
	}
	return u
}

func (r UserRequest) ToPatch() user.Patch {
	p := UserPatchRequest(r).ToPatch()
	if p.Email == nil {
		p.Email = new(string)
	}
	if p.Groups == nil {
		p.Groups = &[]int64{}
	}
	return p
}

type UserPatchRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Groups   *[]int64 `json:"groups"`
}

func (r UserPatchRequest) ToPatch() user.Patch {
	return user.Patch{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Groups:   r.Groups,
	}
}

type GroupRequest struct {
	Name *string `json:"name" validate:"required"`
}

func (r GroupRequest) ToGroup() group.Group {
	return group.Group{Name: deref(r.Name)}
}

type GroupPatchRequest struct {
	Name *string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
