package server

import (
	"net/http"

	"votelyst/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	cfg      config.Config
	sessions *sessionStore
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:    NewStore(conn),
		db:       conn,
		cfg:      cfg,
		sessions: newSessionStore(conn),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /polls/new", s.handleNewPollView)
	mux.HandleFunc("POST /polls", s.handleCreatePoll)
	mux.HandleFunc("GET /polls/{id}", s.handlePollView)
	mux.HandleFunc("POST /polls/{id}", s.handleUpdatePoll)
	mux.HandleFunc("GET /polls/{id}/edit", s.handleEditPollView)
	mux.HandleFunc("POST /polls/{id}/vote", s.handleCastVote)
	mux.HandleFunc("POST /polls/{id}/delete", s.handleDeletePoll)
	mux.HandleFunc("GET /polls/{id}/results", s.handleResultsView)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /login", s.handleLoginView)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterView)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
