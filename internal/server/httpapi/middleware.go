package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// currentUserID returns the authenticated user id placed in the context by
// requireAuth, or "" for an anonymous request.
func currentUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// requireAuth resolves the caller's identity from the sealed session cookie
// first and falls back to an Authorization bearer token. An expired session
// gets its cookie cleared so the browser stops resending a dead token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Read(r)
		if err != nil {
			s.sessions.Destroy(w)
			s.writeError(w, r, common.ErrorNotAuthenticated)
			return
		}
		if sess != nil {
			ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		header := r.Header.Get(common.AuthorizationHeaderName)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
			if err == nil {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		s.writeError(w, r, common.ErrorNotAuthenticated)
	})
}
