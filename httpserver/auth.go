package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/token", s.handleLogin)
	g.POST("/refresh", s.handleRefresh)
}

// handleLogin godoc
// @Summary Obtain Token
// @Description Authenticate with username and password and return access + refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login Credentials"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/token [post]
func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, tokens)
}

// handleRefresh godoc
// @Summary Refresh Token
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RefreshRequest true "Refresh token"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/refresh [post]
func (s *Server) handleRefresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, tokens)
}
