package models

import (
	"time"
)

// Principal identifies a caller: a wallet or contract address.
type Principal string

type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       Principal `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}
