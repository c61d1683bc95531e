package handlers

import (
	"strconv"
	"time"

	"github.com/dimitrije/frame-nest/internal/metrics"
	"github.com/dimitrije/frame-nest/internal/middleware"
	"github.com/dimitrije/frame-nest/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type PhotoHandler struct {
	photoService PhotoServiceInterface
	hub          HubInterface
	metrics      *metrics.Metrics
}

func NewPhotoHandler(photoService PhotoServiceInterface, hub HubInterface, m *metrics.Metrics) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		hub:          hub,
		metrics:      m,
	}
}

func (h *PhotoHandler) Add(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	var req dto.AddPhotoRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.URL == "" {
		c.BadRequest("url is required")
		return
	}

	start := time.Now()
	photo, err := h.photoService.Add(c.Request.Context(), collectionID, req.URL, req.Metadata, caller)
	h.metrics.Observe(metrics.OpAddPhoto, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to add photo")
		return
	}

	h.hub.BroadcastPhotoAdded(photo.CollectionID, photo.ID, caller)

	_ = c.JSON(201, dto.CreatedResponse{ID: photo.ID})
}

func (h *PhotoHandler) Get(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	photoID, ok := parseID(c, "photoId")
	if !ok {
		c.BadRequest("invalid photo id")
		return
	}

	start := time.Now()
	photo, err := h.photoService.GetByID(c.Request.Context(), photoID, caller)
	h.metrics.Observe(metrics.OpGetPhoto, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to get photo")
		return
	}

	var resp dto.PhotoLookupResponse
	if photo != nil {
		r := dto.NewPhotoResponse(photo)
		resp.Photo = &r
	}
	_ = c.JSON(200, resp)
}

func (h *PhotoHandler) List(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	var afterID int64
	if after := c.QueryParam("after"); after != "" {
		parsed, err := strconv.ParseInt(after, 10, 64)
		if err != nil || parsed < 0 {
			c.BadRequest("invalid after cursor")
			return
		}
		afterID = parsed
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			c.BadRequest("invalid limit")
			return
		}
		limit = parsed
	}

	start := time.Now()
	photos, err := h.photoService.List(c.Request.Context(), collectionID, caller, afterID, limit)
	h.metrics.Observe(metrics.OpListPhotos, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to list photos")
		return
	}

	response := make([]dto.PhotoResponse, len(photos))
	for i := range photos {
		response[i] = dto.NewPhotoResponse(&photos[i])
	}

	_ = c.JSON(200, response)
}
