package httpserver

import (
	"net/http"

	"merchex/listing"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterListingRoutes(g *echo.Group) {
	g.GET("", s.handleListListings)
	g.POST("", s.handleCreateListing)
	g.GET("/:id", s.handleGetListing)
	g.PUT("/:id", s.handleReplaceListing)
	g.PATCH("/:id", s.handlePatchListing)
	g.DELETE("/:id", s.handleDeleteListing)
}

// handleListListings godoc
// @Summary List Listings
// @Tags listings
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/listings [get]
func (s *Server) handleListListings(c echo.Context) error {
	listings, err := s.ListingService.ListListings(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, listings)
}

// handleCreateListing godoc
// @Summary Create Listing
// @Tags listings
// @Accept json
// @Produce json
// @Param listing body ListingRequest true "Listing"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/listings [post]
func (s *Server) handleCreateListing(c echo.Context) error {
	var req ListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := s.ListingService.CreateListing(c.Request().Context(), req.ToListing())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, created)
}

// handleGetListing godoc
// @Summary Get Listing
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/listings/{id} [get]
func (s *Server) handleGetListing(c echo.Context) error {
	id, err := idParam(c, listing.ErrListingNotFound)
	if err != nil {
		return err
	}

	l, err := s.ListingService.GetListing(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, l)
}

// handleReplaceListing godoc
// @Summary Replace Listing
// @Tags listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param listing body ListingRequest true "Listing"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/listings/{id} [put]
func (s *Server) handleReplaceListing(c echo.Context) error {
	id, err := idParam(c, listing.ErrListingNotFound)
	if err != nil {
		return err
	}
	var req ListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.ListingService.UpdateListing(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handlePatchListing godoc
// @Summary Update Listing
// @Tags listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param listing body ListingPatchRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/listings/{id} [patch]
func (s *Server) handlePatchListing(c echo.Context) error {
	id, err := idParam(c, listing.ErrListingNotFound)
	if err != nil {
		return err
	}
	var req ListingPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.ListingService.UpdateListing(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handleDeleteListing godoc
// @Summary Delete Listing
// @Tags listings
// @Param id path int true "Listing ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/listings/{id} [delete]
func (s *Server) handleDeleteListing(c echo.Context) error {
	id, err := idParam(c, listing.ErrListingNotFound)
	if err != nil {
		return err
	}

	if err := s.ListingService.DeleteListing(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
