package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/teaghor/storefront-backend/api/middleware"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
)

func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}
