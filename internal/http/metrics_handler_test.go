package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complymetrics/internal/events"
	"complymetrics/internal/testsupport"
)

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &parsed), "body: %s", string(body))
	return resp.StatusCode, parsed
}

func TestMetricsIndexAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	testsupport.CleanAllTables(db)
	app := testsupport.CreateTestApp(t, db)

	now := time.Now().UTC()
	recent := testsupport.NewPageView("/laws/gdpr", events.DeviceDesktop, now.Add(-time.Hour))
	recent.Country = testsupport.StrPtr("DE")
	recent.City = testsupport.StrPtr("Berlin")
	require.NoError(t, db.Create(recent).Error)
	require.NoError(t, db.Create(testsupport.NewPageView("/", events.DeviceMobile, now.Add(-2*time.Hour))).Error)

	// Outside any window a test requests.
	stale := testsupport.NewPageView("/laws/gdpr", events.DeviceDesktop, now.AddDate(0, 0, -90))
	require.NoError(t, db.Create(stale).Error)

	t.Run("default window", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/metrics")
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, float64(2), body["totalViews"])
		assert.Equal(t, float64(1), body["uniqueCountries"])

		topPages, ok := body["topPages"].([]interface{})
		require.True(t, ok)
		require.Len(t, topPages, 2)

		devices, ok := body["deviceDistribution"].([]interface{})
		require.True(t, ok)
		assert.Len(t, devices, 2)
	})

	t.Run("explicit window includes older traffic", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/metrics?days=365")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), body["totalViews"])
	})

	t.Run("country codes are localized", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/metrics")
		require.Equal(t, http.StatusOK, status)

		geo, ok := body["geographicData"].([]interface{})
		require.True(t, ok)
		require.Len(t, geo, 1)

		entry := geo[0].(map[string]interface{})
		assert.Equal(t, "Germany", entry["country"])
		assert.Equal(t, "Berlin", entry["city"])
	})

	t.Run("rejects non-numeric days", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/metrics?days=abc")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "days must be a positive integer", body["error"])
	})

	t.Run("rejects zero and negative days", func(t *testing.T) {
		status, _ := getJSON(t, app, "/api/v1/metrics?days=0")
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = getJSON(t, app, "/api/v1/metrics?days=-7")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
