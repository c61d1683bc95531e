package handlers

import (
	"time"

	"github.com/dimitrije/frame-nest/internal/metrics"
	"github.com/dimitrije/frame-nest/internal/middleware"
	"github.com/dimitrije/frame-nest/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type CollectionHandler struct {
	collectionService CollectionServiceInterface
	metrics           *metrics.Metrics
}

func NewCollectionHandler(collectionService CollectionServiceInterface, m *metrics.Metrics) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		metrics:           m,
	}
}

func (h *CollectionHandler) Create(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	start := time.Now()
	collection, err := h.collectionService.Create(c.Request.Context(), req.Name, req.Description, caller)
	h.metrics.Observe(metrics.OpCreateCollection, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to create collection")
		return
	}

	_ = c.JSON(201, dto.CreatedResponse{ID: collection.ID})
}

func (h *CollectionHandler) Get(c *drift.Context) {
	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	start := time.Now()
	collection, err := h.collectionService.GetByID(c.Request.Context(), collectionID)
	h.metrics.Observe(metrics.OpGetCollection, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to get collection")
		return
	}

	var resp dto.CollectionLookupResponse
	if collection != nil {
		r := dto.NewCollectionResponse(collection)
		resp.Collection = &r
	}
	_ = c.JSON(200, resp)
}

func (h *CollectionHandler) List(c *drift.Context) {
	caller := middleware.GetPrincipal(c)
	if caller == "" {
		c.Unauthorized("not authenticated")
		return
	}

	start := time.Now()
	collections, err := h.collectionService.GetByOwner(c.Request.Context(), caller)
	h.metrics.Observe(metrics.OpListCollections, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to get collections")
		return
	}

	response := make([]dto.CollectionResponse, len(collections))
	for i := range collections {
		response[i] = dto.NewCollectionResponse(&collections[i])
	}

	_ = c.JSON(200, response)
}
