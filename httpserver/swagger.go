package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// @title MerchEx API
// @version 1.0
// @description Band merchandise catalog, contact form and account administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// RegisterSwaggerRoutes serves the generated OpenAPI documents.
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
