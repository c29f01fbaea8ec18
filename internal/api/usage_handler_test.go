package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/courseforge-api/internal/api"
	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/mocks"
)

func TestUsageList(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the user's usage records", func(t *testing.T) {
		generate := domain.NewUsageRecord(userID, domain.UsageActionGenerate)
		generate.Model = domain.ModelGPT4
		generate.DurationMillis = 4200
		export := domain.NewUsageRecord(userID, domain.UsageActionExport)

		handler := api.NewUsageHandler(&mocks.MockUsageStore{
			Records: []*domain.UsageRecord{generate, export},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		w := httptest.NewRecorder()
		handler.List(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []api.UsageRecordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, domain.UsageActionGenerate, resp[0].Action)
		assert.Equal(t, "gpt-4", resp[0].Model)
		assert.Equal(t, int64(4200), resp[0].DurationMillis)
		assert.True(t, resp[0].Success)
	})

	t.Run("empty history encodes as an empty array", func(t *testing.T) {
		handler := api.NewUsageHandler(&mocks.MockUsageStore{})

		req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		w := httptest.NewRecorder()
		handler.List(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("missing authentication rejected", func(t *testing.T) {
		handler := api.NewUsageHandler(&mocks.MockUsageStore{})

		req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
		w := httptest.NewRecorder()
		handler.List(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
