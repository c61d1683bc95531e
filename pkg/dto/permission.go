package dto

import (
	"time"

	"github.com/dimitrije/frame-nest/internal/models"
)

type SetPermissionsRequest struct {
	CanView bool `json:"can_view"`
	CanEdit bool `json:"can_edit"`
}

type SetPermissionsResponse struct {
	Success bool `json:"success"`
}

type PermissionResponse struct {
	CollectionID int64     `json:"collection_id"`
	Grantee      string    `json:"grantee"`
	CanView      bool      `json:"can_view"`
	CanEdit      bool      `json:"can_edit"`
	UpdatedBy    string    `json:"updated_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PermissionLookupResponse struct {
	Permission *PermissionResponse `json:"permission"`
}

func NewPermissionResponse(p *models.Permission) PermissionResponse {
	return PermissionResponse{
		CollectionID: p.CollectionID,
		Grantee:      string(p.Grantee),
		CanView:      p.CanView,
		CanEdit:      p.CanEdit,
		UpdatedBy:    string(p.UpdatedBy),
		UpdatedAt:    p.UpdatedAt,
	}
}
