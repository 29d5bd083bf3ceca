package utils

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSessionName = "tripfront_session"

// FlashStore carries one-shot user-facing messages across a redirect in a
// signed session cookie. Business-flow rejections (bad join code, full
// trip) are flashes, not HTTP errors.
type FlashStore struct {
	store *sessions.CookieStore
}

// NewFlashStore creates a FlashStore signing its cookies with secret.
func NewFlashStore(secret string) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // session cookie
		HttpOnly: true,
	}
	return &FlashStore{store: store}
}

// Add queues a flash message for the next rendered page.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := f.store.Get(r, flashSessionName)
	session.AddFlash(msg)
	_ = session.Save(r, w)
}

// Pop returns all queued flash messages and clears them.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []string {
	session, _ := f.store.Get(r, flashSessionName)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save(r, w)

	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
