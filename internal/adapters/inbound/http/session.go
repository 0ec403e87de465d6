package httpin

import (
	"context"
	"net/http"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/core/session"
)

const sessionCookie = "drinkstand_session"

type sessionKey struct{}

// withSession attaches the caller's session, creating one (and its cookie)
// on first contact.
func withSession(store *session.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sess *session.Session
		if c, err := r.Cookie(sessionCookie); err == nil {
			sess, _ = store.Get(c.Value)
		}
		if sess == nil {
			sess = store.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	}
}

// endSession drops the session once next has run; the stale cookie then misses
// and the client gets a fresh session on its next request.
func endSession(store *session.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r)
		if sess := sessionFrom(r); sess != nil {
			store.Destroy(sess.ID)
		}
	}
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey{}).(*session.Session)
	return sess
}

// requireAuth answers 401 for sessions that have not entered the PIN.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, _ := sessionState(sessionFrom(r))
		if !auth {
			writeError(w, domain.ErrAuthFailure, "enter the PIN first")
			return
		}
		next(w, r)
	}
}

// sessionState reads the gate flag and cart summary under the session lock.
func sessionState(sess *session.Session) (bool, domain.CartSummary) {
	if sess == nil {
		return false, domain.CartSummary{}
	}
	sess.Lock()
	defer sess.Unlock()
	return sess.Authenticated, sess.Cart.Summarize()
}
