package httpserver

import (
	"net/http"

	"merchex/band"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterBandRoutes(g *echo.Group) {
	g.GET("", s.handleListBands)
	g.POST("", s.handleCreateBand)
	g.GET("/:id", s.handleGetBand)
	g.PUT("/:id", s.handleReplaceBand)
	g.PATCH("/:id", s.handlePatchBand)
	g.DELETE("/:id", s.handleDeleteBand)
	g.GET("/:id/listings", s.handleListBandListings)
}

// handleListBands godoc
// @Summary List Bands
// @Tags bands
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/bands [get]
func (s *Server) handleListBands(c echo.Context) error {
	bands, err := s.BandService.ListBands(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, bands)
}

// handleCreateBand godoc
// @Summary Create Band
// @Tags bands
// @Accept json
// @Produce json
// @Param band body BandRequest true "Band"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/bands [post]
func (s *Server) handleCreateBand(c echo.Context) error {
	var req BandRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := s.BandService.CreateBand(c.Request().Context(), req.ToBand())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, created)
}

// handleGetBand godoc
// @Summary Get Band
// @Tags bands
// @Produce json
// @Param id path int true "Band ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/bands/{id} [get]
func (s *Server) handleGetBand(c echo.Context) error {
	id, err := idParam(c, band.ErrBandNotFound)
	if err != nil {
		return err
	}

	b, err := s.BandService.GetBand(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, b)
}

// handleReplaceBand godoc
// @Summary Replace Band
// @Tags bands
// @Accept json
// @Produce json
// @Param id path int true "Band ID"
// @Param band body BandRequest true "Band"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/bands/{id} [put]
func (s *Server) handleReplaceBand(c echo.Context) error {
	id, err := idParam(c, band.ErrBandNotFound)
	if err != nil {
		return err
	}
	var req BandRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.BandService.UpdateBand(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handlePatchBand godoc
// @Summary Update Band
// @Tags bands
// @Accept json
// @Produce json
// @Param id path int true "Band ID"
// @Param band body BandPatchRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/bands/{id} [patch]
func (s *Server) handlePatchBand(c echo.Context) error {
	id, err := idParam(c, band.ErrBandNotFound)
	if err != nil {
		return err
	}
	var req BandPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.BandService.UpdateBand(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handleDeleteBand godoc
// @Summary Delete Band
// @Description Deletes the band and detaches its listings
// @Tags bands
// @Param id path int true "Band ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/bands/{id} [delete]
func (s *Server) handleDeleteBand(c echo.Context) error {
	id, err := idParam(c, band.ErrBandNotFound)
	if err != nil {
		return err
	}

	if err := s.BandService.DeleteBand(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleListBandListings godoc
// @Summary List Band Listings
// @Tags bands
// @Produce json
// @Param id path int true "Band ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/bands/{id}/listings [get]
func (s *Server) handleListBandListings(c echo.Context) error {
	id, err := idParam(c, band.ErrBandNotFound)
	if err != nil {
		return err
	}

	listings, err := s.ListingService.ListListingsByBand(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, listings)
}
