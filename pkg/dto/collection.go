package dto

import (
	"time"

	"github.com/dimitrije/frame-nest/internal/models"
)

type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatedResponse carries the identifier assigned by a create operation.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

type CollectionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollectionLookupResponse wraps an optional collection; Collection is null when absent.
type CollectionLookupResponse struct {
	Collection *CollectionResponse `json:"collection"`
}

func NewCollectionResponse(c *models.Collection) CollectionResponse {
	return CollectionResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Owner:       string(c.Owner),
		CreatedAt:   c.CreatedAt,
	}
}
