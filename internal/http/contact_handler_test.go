package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complymetrics/internal/contact"
	"complymetrics/internal/testsupport"
)

func TestContactCreateAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	testsupport.CleanAllTables(db)
	app := testsupport.CreateTestApp(t, db)

	t.Run("stores valid submission", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@example.com",
			"subject": "CCPA scope",
			"message": "Does CCPA apply to a 10-person company?",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/contact", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 30000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &respBody))
		assert.NotZero(t, respBody["id"])

		var stored contact.Message
		require.NoError(t, db.First(&stored).Error)
		assert.Equal(t, "jane@example.com", stored.Email)
	})

	t.Run("rejects invalid submission with 400", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{
			"name":    "Jane Doe",
			"message": "No email attached.",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/contact", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 30000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &respBody))
		assert.Contains(t, respBody["error"], "email")
	})

	t.Run("rejects malformed body with 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader("{broken"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 30000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
