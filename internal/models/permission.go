package models

import "time"

type Permission struct {
	CollectionID int64     `json:"collection_id"`
	Grantee      Principal `json:"grantee"`
	CanView      bool      `json:"can_view"`
	CanEdit      bool      `json:"can_edit"`
	UpdatedBy    Principal `json:"updated_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Access is the level of access a caller needs on a collection.
type Access int

const (
	AccessView Access = iota
	AccessEdit
	AccessOwner
)

func (a Access) String() string {
	switch a {
	case AccessView:
		return "view"
	case AccessEdit:
		return "edit"
	case AccessOwner:
		return "owner"
	}
	return "unknown"
}

// Allows reports whether the grant satisfies the requested access. Edit implies view.
func (p *Permission) Allows(a Access) bool {
	if p == nil {
		return false
	}
	switch a {
	case AccessView:
		return p.CanView || p.CanEdit
	case AccessEdit:
		return p.CanEdit
	}
	return false
}
