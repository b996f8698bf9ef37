package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"guestalbum/internal/delivery/http/helpers"
	"guestalbum/internal/domain"
)

// AddMediaRequest is the request body for POST /public/events/{eventCode}/media.
// The binary is stored by the upload collaborator; only its URLs are registered here.
type AddMediaRequest struct {
	URL           string `json:"url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	UploaderEmail string `json:"uploader_email"`
	UploaderName  string `json:"uploader_name"`
}

// Validate implements Validator.
func (a AddMediaRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.URL) == "" {
		errs = append(errs, "url is required")
	}
	if a.UploaderEmail != "" && !emailRegex.MatchString(a.UploaderEmail) {
		errs = append(errs, "uploader_email must be a valid email")
	}
	return errs
}

// MediaSuccessResponse is the success response envelope for POST /public/events/{eventCode}/media (201).
type MediaSuccessResponse struct {
	Data  *domain.MediaItem `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PublicController serves the guest side reached through the event QR code.
type PublicController struct {
	Logger       *slog.Logger
	EventService domain.EventService
	MediaService domain.MediaService
}

func NewPublicController(logger *slog.Logger, events domain.EventService, media domain.MediaService) *PublicController {
	return &PublicController{
		Logger:       logger,
		EventService: events,
		MediaService: media,
	}
}

// GetStatus godoc
// @Summary Get the guest view of an event
// @Description Returns the event and its lifecycle status for guest banners. Unpaid events answer 402.
// @Tags public
// @Produce json
// @Param eventCode path string true "Event code from the QR code"
// @Success 200 {object} controllers.EventStatusSuccessResponse
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventCode}/status [get]
func (c *PublicController) GetStatus(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("eventCode")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventCode")
		return
	}
	event, status, err := c.EventService.GetPublicEventStatus(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Event: event, Status: status})
}

// UploadMedia godoc
// @Summary Register a guest upload
// @Description Adds a media item to the album while the upload window is open. The event must be paid.
// @Tags public
// @Accept json
// @Produce json
// @Param eventCode path string true "Event code from the QR code"
// @Param body body AddMediaRequest true "Uploaded media"
// @Success 201 {object} controllers.MediaSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required"
// @Failure 403 {object} helpers.APIResponse "error.code: upload_window_closed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventCode}/media [post]
func (c *PublicController) UploadMedia(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("eventCode")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventCode")
		return
	}
	var req AddMediaRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item := &domain.MediaItem{
		URL:           strings.TrimSpace(req.URL),
		ThumbnailURL:  strings.TrimSpace(req.ThumbnailURL),
		UploaderEmail: req.UploaderEmail,
		UploaderName:  strings.TrimSpace(req.UploaderName),
	}
	created, err := c.MediaService.AddGuestMedia(r.Context(), code, item)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}
