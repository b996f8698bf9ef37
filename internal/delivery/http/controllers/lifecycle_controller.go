package controllers

import (
	"log/slog"
	"net/http"

	"guestalbum/internal/delivery/http/helpers"
	"guestalbum/internal/domain"
)

// RunReportSuccessResponse is the success response envelope for POST /internal/lifecycle/run (200).
type RunReportSuccessResponse struct {
	Data  *domain.RunReport `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LifecycleController exposes the sweep to an external scheduler.
type LifecycleController struct {
	Logger  *slog.Logger
	Service domain.LifecycleJobService
}

func NewLifecycleController(logger *slog.Logger, svc domain.LifecycleJobService) *LifecycleController {
	return &LifecycleController{
		Logger:  logger,
		Service: svc,
	}
}

// RunSweep godoc
// @Summary Run the lifecycle sweep
// @Description Sends due personal-album and deletion-warning emails and purges expired events. Per-event failures are part of the report; the call fails only when events cannot be listed.
// @Tags lifecycle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.RunReportSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /internal/lifecycle/run [post]
func (c *LifecycleController) RunSweep(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.Run(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "lifecycle sweep failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}
