// Package v1 implements the v1 API of the bolsas backend.
package v1

import (
	ez_uuid "github.com/wolf-negro/bolsas-backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	Month string `uri:"month" binding:"required" example:"2026-08"` // Year and month in YYYY-MM format
}
