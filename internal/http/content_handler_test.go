package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complymetrics/internal/content"
	"complymetrics/internal/testsupport"
)

func TestLawEndpoints(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	require.NoError(t, content.SeedReferenceData(db, testsupport.GetLogger()))
	app := testsupport.CreateTestApp(t, db)

	t.Run("index lists all laws", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/laws")
		require.Equal(t, http.StatusOK, status)

		laws, ok := body["laws"].([]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, laws)
	})

	t.Run("index filters by consent model", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/laws?consent_model=OPT_OUT")
		require.Equal(t, http.StatusOK, status)

		laws, ok := body["laws"].([]interface{})
		require.True(t, ok)
		require.NotEmpty(t, laws)
		for _, raw := range laws {
			law := raw.(map[string]interface{})
			assert.Equal(t, "OPT_OUT", law["consent_model"])
		}
	})

	t.Run("show returns law with its countries", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/laws/gdpr")
		require.Equal(t, http.StatusOK, status)

		law, ok := body["law"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "gdpr", law["law_id"])

		cookieCategories, ok := law["cookie_categories"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, cookieCategories, "targeting")

		countries, ok := body["countries"].([]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, countries)
	})

	t.Run("show returns 404 for unknown law", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/laws/no-such-law")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not found", body["error"])
	})
}

func TestCountryEndpoints(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	require.NoError(t, content.SeedReferenceData(db, testsupport.GetLogger()))
	app := testsupport.CreateTestApp(t, db)

	t.Run("index lists all countries", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/countries")
		require.Equal(t, http.StatusOK, status)

		countries, ok := body["countries"].([]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, countries)
	})

	t.Run("index filters by region", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/countries?region=Europe")
		require.Equal(t, http.StatusOK, status)

		countries, ok := body["countries"].([]interface{})
		require.True(t, ok)
		require.NotEmpty(t, countries)
		for _, raw := range countries {
			country := raw.(map[string]interface{})
			assert.Equal(t, "Europe", country["region"])
		}
	})

	t.Run("show returns country with its governing law", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/countries/germany")
		require.Equal(t, http.StatusOK, status)

		country, ok := body["country"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Germany", country["country"])

		law, ok := body["law"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "gdpr", law["law_id"])
	})

	t.Run("show returns 404 for unknown slug", func(t *testing.T) {
		status, _ := getJSON(t, app, "/api/v1/countries/atlantis")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestToolEndpoints(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	require.NoError(t, content.SeedReferenceData(db, testsupport.GetLogger()))
	app := testsupport.CreateTestApp(t, db)

	t.Run("index lists all tools", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/tools")
		require.Equal(t, http.StatusOK, status)

		tools, ok := body["tools"].([]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, tools)
	})

	t.Run("show returns one tool", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/tools/onetrust")
		require.Equal(t, http.StatusOK, status)

		tool, ok := body["tool"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "OneTrust", tool["name"])
	})

	t.Run("show returns 404 for unknown tool", func(t *testing.T) {
		status, _ := getJSON(t, app, "/api/v1/tools/nonexistent")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestContentStatsAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	require.NoError(t, content.SeedReferenceData(db, testsupport.GetLogger()))
	app := testsupport.CreateTestApp(t, db)

	status, body := getJSON(t, app, "/api/v1/stats")
	require.Equal(t, http.StatusOK, status)

	assert.Greater(t, body["totalLaws"], float64(0))
	assert.Greater(t, body["totalCountries"], float64(0))

	consentModels, ok := body["consentModels"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, consentModels, content.ConsentOptIn)
}
