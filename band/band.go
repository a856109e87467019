package band

import (
	"net/url"
	"strings"

	"merchex/errs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MinYearFormed = 1900
	MaxYearFormed = 2021

	maxNameLength      = 100
	maxBiographyLength = 1000
)

var (
	ErrBandNotFound        = errs.Errorf(errs.ENOTFOUND, "band: not found")
	ErrConstraintViolation = errs.Errorf(errs.EINTERNAL, "band: constraint violation")
)

// Genre is the closed set of band genres. Values are the stored codes.
type Genre string

const (
	GenreHipHop          Genre = "HH"
	GenreSynthPop        Genre = "SP"
	GenreAlternativeRock Genre = "AR"
)

// Genres lists every genre in display order.
var Genres = []Genre{GenreHipHop, GenreSynthPop, GenreAlternativeRock}

// ParseGenre accepts a genre code ("AR") or its symbolic name
// ("ALTERNATIVE_ROCK"), case-insensitively.
func ParseGenre(s string) (Genre, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, g := range Genres {
		if s == string(g) || s == g.Name() {
			return g, true
		}
	}
	return "", false
}

// Name returns the symbolic name of the genre, or "" for unknown values.
func (g Genre) Name() string {
	switch g {
	case GenreHipHop:
		return "HIP_HOP"
	case GenreSynthPop:
		return "SYNTH_POP"
	case GenreAlternativeRock:
		return "ALTERNATIVE_ROCK"
	}
	return ""
}

// Label returns the human readable genre.
func (g Genre) Label() string {
	switch g {
	case GenreHipHop:
		return "Hip Hop"
	case GenreSynthPop:
		return "Synth Pop"
	case GenreAlternativeRock:
		return "Alternative Rock"
	}
	return ""
}

func (g Genre) Valid() bool {
	return g.Name() != ""
}

type Band struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Genre            Genre  `json:"genre"`
	Biography        string `json:"biography"`
	YearFormed       int    `json:"year_formed"`
	Active           bool   `json:"active"`
	OfficialHomepage string `json:"official_homepage,omitempty"`
}

// Normalize trims text fields and rewrites a symbolic genre name to its code.
// Unknown genres are left untouched so Validate can reject them.
func (b Band) Normalize() Band {
	b.Name = strings.TrimSpace(b.Name)
	b.Biography = strings.TrimSpace(b.Biography)
	b.OfficialHomepage = strings.TrimSpace(b.OfficialHomepage)
	if g, ok := ParseGenre(string(b.Genre)); ok {
		b.Genre = g
	}
	return b
}

// Validate checks every field and reports all violations at once.
func (b Band) Validate() error {
	return errs.FromValidation(validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required, validation.RuneLength(0, maxNameLength)),
		validation.Field(&b.Genre, validation.Required, validation.In(GenreHipHop, GenreSynthPop, GenreAlternativeRock)),
		validation.Field(&b.Biography, validation.Required, validation.RuneLength(0, maxBiographyLength)),
		validation.Field(&b.YearFormed, validation.Required, validation.Min(MinYearFormed), validation.Max(MaxYearFormed)),
		validation.Field(&b.OfficialHomepage, is.URL, validation.By(absoluteURL)),
	))
}

// Patch holds the fields of an update. Nil fields keep their stored value;
// an empty OfficialHomepage clears it.
type Patch struct {
	Name             *string
	Genre            *Genre
	Biography        *string
	YearFormed       *int
	Active           *bool
	OfficialHomepage *string
}

func (p Patch) Apply(b Band) Band {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Biography != nil {
		b.Biography = *p.Biography
	}
	if p.YearFormed != nil {
		b.YearFormed = *p.YearFormed
	}
	if p.Active != nil {
		b.Active = *p.Active
	}
	if p.OfficialHomepage != nil {
		b.OfficialHomepage = *p.OfficialHomepage
	}
	return b
}

var homepageSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || !homepageSchemes[strings.ToLower(u.Scheme)] || u.Host == "" {
		return validation.NewError("validation_url_absolute", "must be an absolute http(s) or ftp(s) URL")
	}
	return nil
}
