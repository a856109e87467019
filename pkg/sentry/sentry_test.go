package sentry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_Builder(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(nil, nil)
	err := errors.New("delivery failed")
	tags := map[string]string{"request_id": "abc"}

	s := new(Sentry)
	result := s.WithContext(ctx).
		WithError(err).
		WithLevel(sentrygo.LevelWarning).
		WithTags(tags)

	assert.Same(t, s, result, "should return same instance for chaining")
	assert.Equal(t, ctx, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, sentrygo.LevelWarning, s.level)
	assert.Equal(t, tags, s.tags)
}

func TestSentry_WithContext(t *testing.T) {
	ctx := echo.New().NewContext(nil, nil)

	assert.Equal(t, ctx, WithContext(ctx).context)
}

func TestSentry_DisabledEnvironments(t *testing.T) {
	tests := []struct {
		name   string
		appEnv string
		dsn    string
	}{
		{name: "local env", appEnv: "local", dsn: "https://public@sentry.example.com/1"},
		{name: "empty dsn", appEnv: "production", dsn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			t.Setenv("SENTRY_DSN", tt.dsn)

			assert.False(t, enabled())
			assert.NotPanics(t, func() {
				new(Sentry).Error(errors.New("boom"))
			})
		})
	}
}

func TestSentry_Sending(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	assert.NoError(t, sentrygo.Init(sentrygo.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
	}))
	defer sentrygo.Flush(0)

	assert.True(t, enabled())
	assert.NotPanics(t, func() {
		new(Sentry).WithTags(map[string]string{"env": "test"}).Error(errors.New("test error"))
		new(Sentry).Error(nil)
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to the current hub", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("prefers the request hub", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		assert.Same(t, hub, WithContext(ctx).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/bands", nil), httptest.NewRecorder())
	s := WithContext(ctx).
		WithLevel(sentrygo.LevelError).
		WithTags(map[string]string{"request_id": "abc"})

	scope := sentrygo.NewScope()

	assert.NotPanics(t, func() { s.configScope(scope) })
}
