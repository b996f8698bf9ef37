package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"guestalbum/internal/delivery/http/helpers"
	"guestalbum/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleController_RunSweep(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		svc := &fakeLifecycleJobService{report: &domain.RunReport{
			RunID:  "run-1",
			Events: 2,
			Results: []domain.JobResult{
				{EventID: "evt-1", Kind: domain.JobDeletion, Success: true},
				{EventID: "evt-2", Kind: domain.JobPersonalAlbum, Recipient: "g@example.com", Error: "smtp"},
			},
		}}
		ctrl := NewLifecycleController(testLogger, svc)
		rr := httptest.NewRecorder()

		ctrl.RunSweep(rr, httptest.NewRequest(http.MethodPost, "/internal/lifecycle/run", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, svc.calls)
		var resp RunReportSuccessResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.NotNil(t, resp.Data)
		assert.Equal(t, "run-1", resp.Data.RunID)
		require.Len(t, resp.Data.Results, 2)
		assert.Equal(t, 1, resp.Data.Failed())
	})

	t.Run("listing failure is 500", func(t *testing.T) {
		ctrl := NewLifecycleController(testLogger, &fakeLifecycleJobService{err: errors.New("list events: db down")})
		rr := httptest.NewRecorder()

		ctrl.RunSweep(rr, httptest.NewRequest(http.MethodPost, "/internal/lifecycle/run", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, helpers.ErrCodeInternalError, decodeError(t, rr))
	})
}
