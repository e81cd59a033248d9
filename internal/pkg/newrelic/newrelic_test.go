package newrelic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disabledApp(t *testing.T) *newrelic.Application {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("antar-test"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)
	return app
}

func TestInitNewRelic_Disabled(t *testing.T) {
	assert.Nil(t, InitNewRelic(&models.Config{}))
	assert.Nil(t, InitNewRelic(&models.Config{NewRelic: models.NewRelicConfig{Enabled: true}}))
}

func TestMiddleware(t *testing.T) {
	for name, app := range map[string]*newrelic.Application{"nil app": nil, "disabled app": disabledApp(t)} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			e.Use(Middleware(app))

			var sawTxn bool
			e.GET("/ping", func(c echo.Context) error {
				sawTxn = newrelic.FromContext(c.Request().Context()) != nil
				return c.NoContent(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			if app == nil {
				assert.False(t, sawTxn)
			}
		})
	}
}

func TestStartSegment(t *testing.T) {
	assert.NotPanics(t, func() { StartSegment(context.Background(), "noop")() })

	txn := disabledApp(t).StartTransaction("test")
	defer txn.End()
	ctx := newrelic.NewContext(context.Background(), txn)
	assert.NotPanics(t, func() { StartSegment(ctx, "dispatch.score")() })
}
