package httpserver

import (
	"net/http"

	"merchex/group"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGroupRoutes(g *echo.Group) {
	g.GET("", s.handleListGroups)
	g.POST("", s.handleCreateGroup)
	g.GET("/:id", s.handleGetGroup)
	g.PUT("/:id", s.handleReplaceGroup)
	g.PATCH("/:id", s.handlePatchGroup)
	g.DELETE("/:id", s.handleDeleteGroup)
}

// handleListGroups godoc
// @Summary List Groups
// @Tags groups
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/groups [get]
func (s *Server) handleListGroups(c echo.Context) error {
	groups, err := s.GroupService.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, groups)
}

// handleCreateGroup godoc
// @Summary Create Group
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param group body GroupRequest true "Group"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/groups [post]
func (s *Server) handleCreateGroup(c echo.Context) error {
	var req GroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := s.GroupService.CreateGroup(c.Request().Context(), req.ToGroup())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, created)
}

// handleGetGroup godoc
// @Summary Get Group
// @Tags groups
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/groups/{id} [get]
func (s *Server) handleGetGroup(c echo.Context) error {
	id, err := idParam(c, group.ErrGroupNotFound)
	if err != nil {
		return err
	}

	g, err := s.GroupService.GetGroup(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, g)
}

// handleReplaceGroup godoc
// @Summary Replace Group
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param group body GroupRequest true "Group"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/groups/{id} [put]
func (s *Server) handleReplaceGroup(c echo.Context) error {
	id, err := idParam(c, group.ErrGroupNotFound)
	if err != nil {
		return err
	}
	var req GroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return s.updateGroup(c, id, req.Name)
}

// handlePatchGroup godoc
// @Summary Update Group
// @Tags groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param group body GroupPatchRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/groups/{id} [patch]
func (s *Server) handlePatchGroup(c echo.Context) error {
	id, err := idParam(c, group.ErrGroupNotFound)
	if err != nil {
		return err
	}
	var req GroupPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return s.updateGroup(c, id, req.Name)
}

func (s *Server) updateGroup(c echo.Context, id int64, name *string) error {
	updated, err := s.GroupService.UpdateGroup(c.Request().Context(), id, name)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handleDeleteGroup godoc
// @Summary Delete Group
// @Tags groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/groups/{id} [delete]
func (s *Server) handleDeleteGroup(c echo.Context) error {
	id, err := idParam(c, group.ErrGroupNotFound)
	if err != nil {
		return err
	}

	if err := s.GroupService.DeleteGroup(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
