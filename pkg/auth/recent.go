package auth

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

func init() {
	// Session values are gob-encoded; the slug list needs registering.
	gob.Register([]string{})
}

// RecentSessionName is the recently-viewed-buildings cookie.
const RecentSessionName = "aina-recent"

// sessionKeyRecent is the session value holding the slug list.
const sessionKeyRecent = "recent_buildings"

// recentLimit caps how many building slugs the cookie remembers.
const recentLimit = 5

// RecentStore tracks the buildings a visitor viewed most recently in a
// signed cookie session. It needs no account and no server-side state.
type RecentStore struct {
	store *sessions.CookieStore
}

// NewRecentStore creates the cookie-backed store. The secret signs session
// cookies; it can be any passphrase and is SHA-256 hashed to derive a
// 32-byte key. It must be consistent across restarts and replicas or
// sessions invalidate on every deploy.
func NewRecentStore(secret string, secure bool) *RecentStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30, // 30 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &RecentStore{store: store}
}

// Recent returns the visitor's recently viewed building slugs, most recent
// first. A missing or undecodable cookie yields an empty list.
func (s *RecentStore) Recent(r *http.Request) []string {
	session, err := s.store.Get(r, RecentSessionName)
	if err != nil {
		return nil
	}
	slugs, _ := session.Values[sessionKeyRecent].([]string)
	return slugs
}

// RecordView moves slug to the front of the visitor's list, dropping
// duplicates and anything beyond the limit, and saves the cookie.
func (s *RecentStore) RecordView(w http.ResponseWriter, r *http.Request, slug string) error {
	session, err := s.store.Get(r, RecentSessionName)
	if err != nil {
		// A tampered cookie decodes to a fresh session; start over.
		session, _ = s.store.New(r, RecentSessionName)
	}

	existing, _ := session.Values[sessionKeyRecent].([]string)
	updated := make([]string, 0, recentLimit)
	updated = append(updated, slug)
	for _, s := range existing {
		if s == slug {
			continue
		}
		updated = append(updated, s)
		if len(updated) == recentLimit {
			break
		}
	}

	session.Values[sessionKeyRecent] = updated
	return session.Save(r, w)
}
