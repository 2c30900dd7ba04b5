package server

import (
	"errors"
	"log/slog"
	"net/http"
)

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	user := s.currentUser(w, r)
	var ownerID *string
	if user != nil {
		ownerID = &user.ID
	}
	requiresLogin := r.PostForm.Get("requires_login") == "on"

	poll, err := s.store.CreatePoll(
		ownerID,
		r.PostForm.Get("question"),
		r.PostForm.Get("description"),
		r.PostForm["option_text"],
		requiresLogin,
	)
	if err != nil {
		if IsValidation(err) {
			s.sessions.SetFlash(w, r, err.Error())
			http.Redirect(w, r, "/polls/new", http.StatusFound)
			return
		}
		slog.Error("create poll", "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	s.sessions.SetFlash(w, r, "Poll created")
	http.Redirect(w, r, "/polls/"+poll.ID, http.StatusFound)
}

func (s *Server) handleUpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	poll, err := s.store.GetPoll(pollID)
	if err != nil {
		s.renderNotFound(w, r, err)
		return
	}
	user := s.currentUser(w, r)
	if user == nil {
		redirectToLogin(w, r)
		return
	}
	if poll.UserID == nil || *poll.UserID != user.ID {
		http.Error(w, "only the poll owner can edit it", http.StatusForbidden)
		return
	}

	ids := r.PostForm["option_id"]
	texts := r.PostForm["option_text"]
	options := make([]OptionInput, 0, len(texts))
	for i, text := range texts {
		option := OptionInput{Text: text}
		if i < len(ids) {
			option.ID = ids[i]
		}
		options = append(options, option)
	}

	_, err = s.store.UpdatePoll(
		pollID,
		r.PostForm.Get("question"),
		r.PostForm.Get("description"),
		options,
		r.PostForm.Get("requires_login") == "on",
	)
	if err != nil {
		if IsValidation(err) {
			s.sessions.SetFlash(w, r, err.Error())
			http.Redirect(w, r, "/polls/"+pollID+"/edit", http.StatusFound)
			return
		}
		slog.Error("update poll", "poll_id", pollID, "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	s.sessions.SetFlash(w, r, "Poll updated")
	http.Redirect(w, r, "/polls/"+pollID, http.StatusFound)
}

func (s *Server) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	poll, err := s.store.GetPoll(pollID)
	if err != nil {
		s.renderNotFound(w, r, err)
		return
	}
	user := s.currentUser(w, r)
	if user == nil {
		redirectToLogin(w, r)
		return
	}
	if poll.UserID == nil || *poll.UserID != user.ID {
		http.Error(w, "only the poll owner can delete it", http.StatusForbidden)
		return
	}
	if err := s.store.DeletePoll(pollID); err != nil && !errors.Is(err, ErrNotFound) {
		slog.Error("delete poll", "poll_id", pollID, "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	s.sessions.SetFlash(w, r, "Poll deleted")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	poll, err := s.store.GetPoll(pollID)
	if err != nil {
		s.renderNotFound(w, r, err)
		return
	}
	voter, ok := s.currentVoter(w, r, poll)
	if !ok {
		redirectToLogin(w, r)
		return
	}
	optionID := r.PostForm.Get("option")
	if optionID == "" {
		s.sessions.SetFlash(w, r, "Please select an option")
		http.Redirect(w, r, "/polls/"+pollID, http.StatusFound)
		return
	}

	_, err = s.store.CastVote(pollID, optionID, voter)
	switch {
	case err == nil:
		s.sessions.SetFlash(w, r, "Vote submitted")
	case errors.Is(err, ErrDuplicateVote):
		// The vote page looks up the existing vote and shows the prior choice.
		s.sessions.SetFlash(w, r, "You have already voted on this poll")
		http.Redirect(w, r, "/polls/"+pollID, http.StatusFound)
		return
	case errors.Is(err, ErrLoginRequired):
		redirectToLogin(w, r)
		return
	case IsValidation(err):
		s.sessions.SetFlash(w, r, err.Error())
		http.Redirect(w, r, "/polls/"+pollID, http.StatusFound)
		return
	default:
		slog.Error("cast vote", "poll_id", pollID, "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	// Results for owned polls are owner-only, so non-owners land back on
	// the poll page with their recorded choice instead.
	if poll.UserID == nil {
		http.Redirect(w, r, "/polls/"+pollID+"/results", http.StatusFound)
		return
	}
	if user := s.currentUser(w, r); user != nil && *poll.UserID == user.ID {
		http.Redirect(w, r, "/polls/"+pollID+"/results", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/polls/"+pollID, http.StatusFound)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	user, err := s.store.AuthenticateUser(r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			s.sessions.SetFlash(w, r, "Invalid email or password")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		slog.Error("login", "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	s.sessions.SetUserID(w, r, user.ID)
	http.Redirect(w, r, safeReturnPath(r.PostForm.Get("from")), http.StatusFound)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	user, err := s.store.RegisterUser(
		r.PostForm.Get("email"),
		r.PostForm.Get("name"),
		r.PostForm.Get("password"),
		s.cfg.BcryptCost,
	)
	if err != nil {
		if IsValidation(err) {
			s.sessions.SetFlash(w, r, err.Error())
			http.Redirect(w, r, "/register", http.StatusFound)
			return
		}
		slog.Error("register", "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	s.sessions.SetUserID(w, r, user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.SetUserID(w, r, "")
	http.Redirect(w, r, "/", http.StatusFound)
}
