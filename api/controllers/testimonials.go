package controllers

import (
	"net/http"

	"github.com/teaghor/storefront-backend/api/responses"
	"github.com/teaghor/storefront-backend/api/validators"
	testimonialsvc "github.com/teaghor/storefront-backend/internal/testimonials"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/logger"
)

func TestimonialsList(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonials service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", testimonialsvc.DefaultLimit, 1, testimonialsvc.DefaultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		testimonials, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, testimonials)
	}
}
