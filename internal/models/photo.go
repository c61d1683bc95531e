package models

import "time"

type Photo struct {
	ID           int64     `json:"id"`
	CollectionID int64     `json:"collection_id"`
	URL          string    `json:"url"`
	Metadata     string    `json:"metadata"`
	AddedBy      Principal `json:"added_by"`
	CreatedAt    time.Time `json:"created_at"`
}
