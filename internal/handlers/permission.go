package handlers

import (
	"time"

	"github.com/dimitrije/frame-nest/internal/metrics"
	"github.com/dimitrije/frame-nest/internal/middleware"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/services"
	"github.com/dimitrije/frame-nest/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type PermissionHandler struct {
	permissionService PermissionServiceInterface
	hub               HubInterface
	metrics           *metrics.Metrics
}

func NewPermissionHandler(permissionService PermissionServiceInterface, hub HubInterface, m *metrics.Metrics) *PermissionHandler {
	return &PermissionHandler{
		permissionService: permissionService,
		hub:               hub,
		metrics:           m,
	}
}

func (h *PermissionHandler) Set(c *drift.Context) {
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

	grantee := models.Principal(c.Param("grantee"))
	if err := services.ValidatePrincipal(grantee); err != nil {
		c.BadRequest("invalid grantee")
		return
	}

	var req dto.SetPermissionsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	start := time.Now()
	perm, err := h.permissionService.Set(c.Request.Context(), collectionID, grantee, req.CanView, req.CanEdit, caller)
	h.metrics.Observe(metrics.OpSetPermissions, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to set permissions")
		return
	}

	h.hub.BroadcastPermissionsUpdated(perm)

	_ = c.JSON(200, dto.SetPermissionsResponse{Success: true})
}

func (h *PermissionHandler) Get(c *drift.Context) {
	collectionID, ok := parseID(c, "collectionId")
	if !ok {
		c.BadRequest("invalid collection id")
		return
	}

	grantee := models.Principal(c.Param("grantee"))
	if err := services.ValidatePrincipal(grantee); err != nil {
		c.BadRequest("invalid grantee")
		return
	}

	start := time.Now()
	perm, err := h.permissionService.Get(c.Request.Context(), collectionID, grantee)
	h.metrics.Observe(metrics.OpGetPermissions, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to get permissions")
		return
	}

	var resp dto.PermissionLookupResponse
	if perm != nil {
		r := dto.NewPermissionResponse(perm)
		resp.Permission = &r
	}
	_ = c.JSON(200, resp)
}

func (h *PermissionHandler) List(c *drift.Context) {
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

	start := time.Now()
	perms, err := h.permissionService.List(c.Request.Context(), collectionID, caller)
	h.metrics.Observe(metrics.OpListPermissions, start, err)
	if err != nil {
		writeServiceError(c, err, "failed to list permissions")
		return
	}

	response := make([]dto.PermissionResponse, len(perms))
	for i := range perms {
		response[i] = dto.NewPermissionResponse(&perms[i])
	}

	_ = c.JSON(200, response)
}
