package web

import (
	"context"
	"net/http"

	"github.com/desertthunder/ktv/internal/session"
	"github.com/desertthunder/ktv/internal/shared"
)

type sessionKey struct{}

// withSession resolves the session cookie, starting a new session when the cookie is
// missing, malformed or names a session that no longer exists.
func (a *App) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *session.Session
		if c, err := r.Cookie(a.cookieName); err == nil && shared.IsValidID(c.Value) {
			sess, _ = a.sessions.Get(c.Value)
		}
		if sess == nil {
			sess = a.sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     a.cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

// sessionFrom returns the session attached by withSession.
func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}
