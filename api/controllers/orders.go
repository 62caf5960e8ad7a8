package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teaghor/storefront-backend/api/responses"
	"github.com/teaghor/storefront-backend/api/validators"
	ordersvc "github.com/teaghor/storefront-backend/internal/orders"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/logger"
)

// OrdersGetByNumber serves the post-checkout confirmation page lookup.
// Clients send the order number without the leading hash.
func OrdersGetByNumber(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		number := validators.SanitizeString(chi.URLParam(r, "orderNumber"), 16)
		if number == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}
		if !strings.HasPrefix(number, "#") {
			number = "#" + number
		}

		order, err := svc.GetOrderByNumber(r.Context(), number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
