package middleware

import (
	"net/http"
	"time"

	"github.com/teaghor/storefront-backend/api/responses"
	"github.com/teaghor/storefront-backend/pkg/config"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/logger"
	"github.com/teaghor/storefront-backend/pkg/session"
)

const sessionTokenHeader = "X-Session-Token"

// Session resolves the anonymous browser session that keys carts and
// checkout flows. A valid token is passed through, anything else gets a
// freshly minted one. The token is echoed on every response so clients
// can persist it.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := r.Header.Get(sessionTokenHeader)
			claims, err := session.Parse(cfg, token)
			if err != nil {
				minted, sessionID, mintErr := session.Mint(cfg, time.Now())
				if mintErr != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, mintErr, "mint session token"))
					return
				}
				if token != "" && logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"reason": err.Error()}), "replacing unusable session token")
				}
				w.Header().Set(sessionTokenHeader, minted)
				ctx = WithSessionID(ctx, sessionID)
				if logg != nil {
					ctx = logg.WithSessionID(ctx, sessionID.String())
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			w.Header().Set(sessionTokenHeader, token)
			ctx = WithSessionID(ctx, claims.SessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, claims.SessionID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
