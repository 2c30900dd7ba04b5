package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"votelyst/internal/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// RegisterUser creates an account with a bcrypt-hashed password.
func (s *Store) RegisterUser(email, name, password string, cost int) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationErr("email", "a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, validationErr("password", "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}
	user := &db.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.conn.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, validationErr("email", "an account with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateUser verifies an email/password pair. A missing account and a
// wrong password both return ErrForbidden so login failures are uniform.
func (s *Store) AuthenticateUser(email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user db.User
	if err := s.conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrForbidden
	}
	return &user, nil
}

// GetUser fetches an account by id.
func (s *Store) GetUser(userID string) (*db.User, error) {
	var user db.User
	if err := s.conn.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// currentUser resolves the signed-in user from the session, if any.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) *db.User {
	userID := s.sessions.GetUserID(w, r)
	if userID == "" {
		return nil
	}
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil
	}
	return user
}

// currentVoter picks the voter identity for a poll: signed-in users always
// vote as themselves; anonymous visitors get a device id unless the poll
// requires login, in which case the zero Voter is returned with ok=false.
func (s *Server) currentVoter(w http.ResponseWriter, r *http.Request, poll *db.Poll) (Voter, bool) {
	if user := s.currentUser(w, r); user != nil {
		return AuthenticatedVoter(user.ID), true
	}
	if poll.RequiresLogin {
		return Voter{}, false
	}
	return AnonymousVoter(s.sessions.EnsureAnonID(w, r)), true
}
