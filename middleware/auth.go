package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/auth"
	"github.com/ThomasRolland/comptalib/internal/response"

	"github.com/gorilla/mux"
)

type contextKey string

// UserIDKey holds the verified acting user id in the request context.
const UserIDKey contextKey = "id_user"

type Middleware struct {
	Tokens *auth.TokenService
	Users  db.UserRepository
}

func NewMiddleware(tokens *auth.TokenService, users db.UserRepository) *Middleware {
	return &Middleware{Tokens: tokens, Users: users}
}

// SelfOnly gates a mutation route so that only the user identified by the
// token may act on the {id} named in the path.
//
// Outcomes, in order:
//   - no oauth_token header: HTTP 200 with null data (kept as-is from the
//     existing contract, see DESIGN.md)
//   - token invalid or expired: 400
//   - store error while resolving the identity: 500
//   - path id differs from the token's id: 403
//   - otherwise the wrapped handler runs with the id in context
func (m *Middleware) SelfOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.Header.Get("oauth_token")
		if tokenStr == "" {
			response.JSON(w, http.StatusOK, nil, "Not found: Token Not found")
			return
		}

		userID, err := m.Tokens.Verify(tokenStr)
		if err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Bad request : oauth_token is invalid")
			return
		}

		if _, err := m.Users.FindByID(r.Context(), userID); err != nil && err != db.ErrNotFound {
			response.JSON(w, http.StatusInternalServerError, nil, "Bad request : something went wrong")
			return
		}

		targetID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil || targetID != userID {
			response.JSON(w, http.StatusForbidden, nil, "Bad request : Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
