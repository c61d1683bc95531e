package dto

import (
	"time"

	"github.com/dimitrije/frame-nest/internal/models"
)

type AddPhotoRequest struct {
	URL      string `json:"url"`
	Metadata string `json:"metadata"`
}

type PhotoResponse struct {
	ID           int64     `json:"id"`
	CollectionID int64     `json:"collection_id"`
	URL          string    `json:"url"`
	Metadata     string    `json:"metadata"`
	AddedBy      string    `json:"added_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type PhotoLookupResponse struct {
	Photo *PhotoResponse `json:"photo"`
}

func NewPhotoResponse(p *models.Photo) PhotoResponse {
	return PhotoResponse{
		ID:           p.ID,
		CollectionID: p.CollectionID,
		URL:          p.URL,
		Metadata:     p.Metadata,
		AddedBy:      string(p.AddedBy),
		CreatedAt:    p.CreatedAt,
	}
}
