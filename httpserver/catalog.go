package httpserver

import (
	"net/http"

	"merchex/band"
	"merchex/listing"

	"github.com/labstack/echo/v4"
)

// Choice describes one value of a closed enumeration for form rendering.
type Choice struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

func (s *Server) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/genres", s.handleListGenres)
	g.GET("/listing-types", s.handleListListingTypes)
}

// handleListGenres godoc
// @Summary List Genres
// @Tags catalog
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	choices := make([]Choice, 0, len(band.Genres))
	for _, g := range band.Genres {
		choices = append(choices, Choice{Code: string(g), Name: g.Name(), Label: g.Label()})
	}
	return writeList(c, http.StatusOK, choices)
}

// handleListListingTypes godoc
// @Summary List Listing Types
// @Tags catalog
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/listing-types [get]
func (s *Server) handleListListingTypes(c echo.Context) error {
	choices := make([]Choice, 0, len(listing.Types))
	for _, t := range listing.Types {
		choices = append(choices, Choice{Code: string(t), Name: t.Name(), Label: t.Label()})
	}
	return writeList(c, http.StatusOK, choices)
}
