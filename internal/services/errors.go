package services

import "errors"

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrUnauthorized       = errors.New("caller is not authorized for this collection")
	ErrInvalidArgument    = errors.New("invalid argument")
)
