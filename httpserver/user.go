package httpserver

import (
	"net/http"

	"merchex/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	g.GET("", s.handleListUsers)
	g.POST("", s.handleCreateUser)
	g.GET("/:id", s.handleGetUser)
	g.PUT("/:id", s.handleReplaceUser)
	g.PATCH("/:id", s.handlePatchUser)
	g.DELETE("/:id", s.handleDeleteUser)
}

// handleListUsers godoc
// @Summary List Users
// @Description Get all users, newest first
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/users [get]
func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.UserService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, users)
}

// handleCreateUser godoc
// @Summary Create User
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body UserRequest true "User"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/users [post]
func (s *Server) handleCreateUser(c echo.Context) error {
	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := s.UserService.CreateUser(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, created)
}

// handleGetUser godoc
// @Summary Get User
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/users/{id} [get]
func (s *Server) handleGetUser(c echo.Context) error {
	id, err := idParam(c, user.ErrUserNotFound)
	if err != nil {
		return err
	}

	u, err := s.UserService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, u)
}

// handleReplaceUser godoc
// @Summary Replace User
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UserRequest true "User"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/users/{id} [put]
func (s *Server) handleReplaceUser(c echo.Context) error {
	id, err := idParam(c, user.ErrUserNotFound)
	if err != nil {
		return err
	}
	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.UserService.UpdateUser(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handlePatchUser godoc
// @Summary Update User
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UserPatchRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/users/{id} [patch]
func (s *Server) handlePatchUser(c echo.Context) error {
	id, err := idParam(c, user.ErrUserNotFound)
	if err != nil {
		return err
	}
	var req UserPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.UserService.UpdateUser(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, updated)
}

// handleDeleteUser godoc
// @Summary Delete User
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/users/{id} [delete]
func (s *Server) handleDeleteUser(c echo.Context) error {
	id, err := idParam(c, user.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := s.UserService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
