package server

import (
	"errors"
	"log/slog"
	"net/http"

	"votelyst/internal/db"
	"votelyst/internal/web"

	"github.com/a-h/templ"
)

func viewerOf(user *db.User) *web.Viewer {
	if user == nil {
		return nil
	}
	return &web.Viewer{Name: user.Name, Email: user.Email}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	flash := s.sessions.PopFlash(w, r)
	user := s.currentUser(w, r)
	polls, err := s.store.ListPolls()
	if err != nil {
		slog.Error("list polls", "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	summaries := make([]web.PollSummary, 0, len(polls))
	for _, poll := range polls {
		summaries = append(summaries, pollSummary(poll))
	}
	templ.Handler(web.Home(flash, viewerOf(user), summaries)).ServeHTTP(w, r)
}

func pollSummary(poll db.Poll) web.PollSummary {
	return web.PollSummary{
		ID:            poll.ID,
		Question:      poll.Question,
		Description:   poll.Description,
		OptionCount:   len(poll.Options),
		RequiresLogin: poll.RequiresLogin,
		CreatedAt:     poll.CreatedAt,
	}
}

func (s *Server) handlePollView(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	poll, err := s.store.GetPoll(pollID)
	if err != nil {
		s.renderNotFound(w, r, err)
		return
	}
	user := s.currentUser(w, r)
	if poll.RequiresLogin && user == nil {
		redirectToLogin(w, r)
		return
	}

	view := web.PollView{
		ID:          poll.ID,
		Question:    poll.Question,
		Description: poll.Description,
		CanEdit:     user != nil && poll.UserID != nil && *poll.UserID == user.ID,
	}
	for _, option := range poll.Options {
		view.Options = append(view.Options, web.OptionField{ID: option.ID, Text: option.OptionText})
	}
	if voter, ok := s.currentVoter(w, r, poll); ok {
		if vote, found := s.store.FindVote(poll.ID, voter); found {
			view.VotedOptionID = vote.OptionID
		}
	}
	flash := s.sessions.PopFlash(w, r)
	templ.Handler(web.PollVote(flash, viewerOf(user), view)).ServeHTTP(w, r)
}

func (s *Server) handleResultsView(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	poll, err := s.store.GetPoll(pollID)
	if err != nil {
		s.renderNotFound(w, r, err)
		return
	}
	user := s.currentUser(w, r)
	if poll.UserID != nil {
		if user == nil {
			redirectToLogin(w, r)
			return
		}
		if user.ID != *poll.UserID {
			templ.Handler(web.Forbidden(viewerOf(user)), templ.WithStatus(http.StatusForbidden)).ServeHTTP(w, r)
			return
		}
	}

	results, err := s.store.Results(pollID)
	if err != nil {
		slog.Error("aggregate results", "poll_id", pollID, "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	view := web.ResultsView{
		ID:          poll.ID,
		Question:    poll.Question,
		Description: poll.Description,
		TotalVotes:  results.TotalVotes,
	}
	for _, option := range poll.Options {
		count := results.Counts[option.ID]
		view.Rows = append(view.Rows, web.ResultRow{
			Text:    option.OptionText,
			Count:   count,
			Percent: Percent(count, results.TotalVotes),
		})
	}
	flash := s.sessions.PopFlash(w, r)
	templ.Handler(web.Results(flash, viewerOf(user), view)).ServeHTTP(w, r)
}

func (s *Server) handleNewPollView(w http.ResponseWriter, r *http.Request) {
	flash := s.sessions.PopFlash(w, r)
	user := s.currentUser(w, r)
	form := web.PollForm{Options: []web.OptionField{{}, {}}, SignedIn: user != nil}
	templ.Handler(web.NewPoll(flash, viewerOf(user), form)).ServeHTTP(w, r)
}

func (s *Server) handleEditPollView(w http.ResponseWriter, r *http.Request) {
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
		templ.Handler(web.Forbidden(viewerOf(user)), templ.WithStatus(http.StatusForbidden)).ServeHTTP(w, r)
		return
	}
	form := web.PollForm{
		PollID:        poll.ID,
		Question:      poll.Question,
		Description:   poll.Description,
		RequiresLogin: poll.RequiresLogin,
		SignedIn:      true,
	}
	for _, option := range poll.Options {
		form.Options = append(form.Options, web.OptionField{ID: option.ID, Text: option.OptionText})
	}
	flash := s.sessions.PopFlash(w, r)
	templ.Handler(web.EditPoll(flash, viewerOf(user), form)).ServeHTTP(w, r)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		redirectToLogin(w, r)
		return
	}
	polls, err := s.store.ListUserPolls(user.ID)
	if err != nil {
		slog.Error("list user polls", "user_id", user.ID, "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	voteCount, err := s.store.UserVoteCount(user.ID)
	if err != nil {
		slog.Error("count user votes", "user_id", user.ID, "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}
	events, err := s.store.RecentEvents(user.ID, 20)
	if err != nil {
		slog.Error("recent events", "user_id", user.ID, "error", err)
		events = nil
	}

	data := web.DashboardData{VoteCount: voteCount}
	for _, poll := range polls {
		data.Polls = append(data.Polls, pollSummary(poll))
	}
	for _, event := range events {
		data.Activity = append(data.Activity, web.ActivityItem{
			Type: event.Type,
			When: event.CreatedAt,
		})
	}
	flash := s.sessions.PopFlash(w, r)
	templ.Handler(web.Dashboard(flash, viewerOf(user), data)).ServeHTTP(w, r)
}

func (s *Server) handleLoginView(w http.ResponseWriter, r *http.Request) {
	flash := s.sessions.PopFlash(w, r)
	from := safeReturnPath(r.URL.Query().Get("from"))
	templ.Handler(web.Login(flash, from)).ServeHTTP(w, r)
}

func (s *Server) handleRegisterView(w http.ResponseWriter, r *http.Request) {
	flash := s.sessions.PopFlash(w, r)
	templ.Handler(web.Register(flash)).ServeHTTP(w, r)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		slog.Error("fetch poll", "path", r.URL.Path, "error", err)
	}
	templ.Handler(web.NotFound(), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}
