package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"merchex/auth"
	"merchex/band"
	"merchex/contact"
	"merchex/errs"
	"merchex/group"
	"merchex/listing"
	"merchex/pkg/config"
	"merchex/pkg/jwt"
	"merchex/pkg/logger"
	"merchex/pkg/sentry"
	"merchex/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config
	Logger *zap.SugaredLogger

	BandService    band.Service
	ListingService listing.Service
	ContactService contact.Service
	UserService    user.Service
	GroupService   group.Service
	AuthService    auth.Service
}

func Default(cfg *config.Config, options ...Options) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Config:       cfg,
		Logger:       logger.NOOPLogger,
	}
	if cfg.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		s.AllowOrigins = origins
	}
	for _, fn := range options {
		fn(&s)
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	requireAuth := s.authMiddleware()

	// PUBLIC
	s.RegisterBandRoutes(api.Group("/bands"))
	s.RegisterListingRoutes(api.Group("/listings"))
	s.RegisterCatalogRoutes(api)
	s.RegisterContactRoutes(api.Group("/contact"), requireAuth)
	s.RegisterAuthRoutes(api.Group("/auth"))

	// PRIVATE
	s.RegisterUserRoutes(api.Group("/users", requireAuth))
	s.RegisterGroupRoutes(api.Group("/groups", requireAuth))

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

// authMiddleware accepts unexpired HS256 access tokens signed with the
// configured secret. Every failure is reported as EUNAUTHORIZED.
func (s *Server) authMiddleware() echo.MiddlewareFunc {
	tokens := jwt.NewJWTProvider(s.Config.Auth.JWTSecret, 0, 0)
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.ParseAccessToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.Wrap(errs.EUNAUTHORIZED, err, "authentication required")
		},
	})
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// handleError maps application errors to HTTP responses. Internal errors are
// logged and reported, and their details never reach the caller.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := internalErrorMessage
	internal := true

	var appErr *errs.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = statusOf(err)
		if appErr.Code != errs.EINTERNAL && status != http.StatusInternalServerError {
			message = appErr.Message
			internal = false
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
		internal = status >= http.StatusInternalServerError && status != http.StatusNotImplemented
	}

	if internal {
		requestID := s.requestID(c)
		s.Logger.Errorw(
			err.Error(),
			zap.String("request_id", requestID),
			zap.String("path", c.Path()),
		)
		sentry.WithContext(c).
			WithTags(map[string]string{"request_id": requestID}).
			Error(err)
	}

	if err := writeError(c, status, message, err); err != nil {
		s.Logger.Errorw("write error response", zap.Error(err))
	}
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
