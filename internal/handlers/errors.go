package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/dimitrije/frame-nest/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// parseID only rejects non-integers. Ids below 1 reach the services, which
// report them as missing like any other unknown id.
func parseID(c *drift.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(c *drift.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.BadRequest(err.Error())
	case errors.Is(err, services.ErrCollectionNotFound):
		c.NotFound("collection not found")
	case errors.Is(err, services.ErrUnauthorized):
		c.Forbidden("not authorized for this collection")
	default:
		log.Printf("%s: %v", fallback, err)
		c.InternalServerError(fallback)
	}
}
