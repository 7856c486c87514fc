package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
)

const sessionCookie = "blu_session"

type sessionKey struct{}

// sessionFromContext returns the session resolved for this request, or nil.
func sessionFromContext(ctx context.Context) *app.Session {
	v, _ := ctx.Value(sessionKey{}).(*app.Session)
	return v
}

// sessionClaims is the signed cookie payload. Subject carries the session id.
type sessionClaims struct {
	jwt.RegisteredClaims
}

func (h *Handler) signSession(id string) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.sessionSecret))
}

// parseSession returns the session id from a signed token.
func (h *Handler) parseSession(raw string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.sessionSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	return claims.Subject, nil
}

// Session resolves the caller's dashboard session from the signed cookie and
// injects it into the request context. A missing, tampered or expired cookie
// starts a new session and issues a fresh cookie.
func (h *Handler) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if sid, err := h.parseSession(cookie.Value); err == nil {
				id = sid
			}
		}

		sess, err := h.svc.ResolveSession(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		if sess.ID != id {
			signed, err := h.signSession(sess.ID)
			if err != nil {
				writeError(w, r, "session token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    signed,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.secureCookies,
				SameSite: http.SameSiteStrictMode,
				MaxAge:   int(h.sessionTTL.Seconds()),
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the id of the session resolved by the Session middleware.
func sessionID(r *http.Request) string {
	if s := sessionFromContext(r.Context()); s != nil {
		return s.ID
	}
	return ""
}
