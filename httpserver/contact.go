package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterContactRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("", s.handleSubmitContact)
	g.GET("/messages", s.handleListContactMessages, requireAuth)
}

// handleSubmitContact godoc
// @Summary Contact Us
// @Description Validate a contact form submission and mail it to the shop
// @Tags contact
// @Accept json
// @Produce json
// @Param message body ContactRequest true "Contact form"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/contact [post]
func (s *Server) handleSubmitContact(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.ContactService.Submit(c.Request().Context(), req.ToMessage()); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "sent",
	})
}

// handleListContactMessages godoc
// @Summary List Contact Messages
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 501 {object} APIResponse
// @Router /api/contact/messages [get]
func (s *Server) handleListContactMessages(c echo.Context) error {
	messages, err := s.ContactService.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, messages)
}
