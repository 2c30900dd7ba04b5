package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"time"

	"votelyst/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	sessionCookie = "vl_session"
	anonCookie    = "vl_anon"
)

// sessionStore keeps per-visitor state (signed-in user, flash message) keyed
// by a cookie. Sessions persist in the database; with a nil connection it
// falls back to an in-memory map, which the tests use.
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]sessionData
}

type sessionData struct {
	Flash  string
	UserID string
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]sessionData),
	}
}

func (s *sessionStore) SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		data := s.sessions[id]
		data.Flash = message
		s.sessions[id] = data
		s.mu.Unlock()
		return
	}
	record := s.load(id)
	record.Flash = message
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) PopFlash(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		data := s.sessions[id]
		message := data.Flash
		data.Flash = ""
		s.sessions[id] = data
		return message
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return ""
	}
	if record.Flash == "" {
		return ""
	}
	message := record.Flash
	record.Flash = ""
	_ = s.db.Save(&record).Error
	return message
}

func (s *sessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		data := s.sessions[id]
		data.UserID = userID
		s.sessions[id] = data
		s.mu.Unlock()
		return
	}
	record := s.load(id)
	if userID == "" {
		record.UserID = nil
	} else {
		record.UserID = &userID
	}
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) GetUserID(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sessions[id].UserID
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return ""
	}
	if record.UserID == nil {
		return ""
	}
	return *record.UserID
}

func (s *sessionStore) load(id string) db.Session {
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		record = db.Session{ID: id}
	}
	return record
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// EnsureAnonID returns the visitor's persisted anonymous voter id, issuing a
// fresh one on first use. It is the correlation key for "has this visitor
// already voted" on public polls; clearing cookies resets it, which is an
// accepted limitation rather than a security boundary.
func (s *sessionStore) EnsureAnonID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(anonCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().AddDate(1, 0, 0),
	})
	return id
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}
