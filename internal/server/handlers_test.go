package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"votelyst/internal/config"
	"votelyst/internal/db"

	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	conn := newTestConn(t)
	cfg := config.Default()
	cfg.BcryptCost = bcryptTestCost
	return New(conn, cfg), conn
}

// signIn mints a session cookie for the user by driving the session store
// directly, skipping the login form.
func signIn(t *testing.T, srv *Server, userID string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	srv.sessions.SetUserID(w, r, userID)
	return w.Result().Cookies()
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func get(t *testing.T, handler http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("GET", path, nil)
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestHomeListsPolls(t *testing.T) {
	srv, _ := newTestServer(t)
	mustCreatePoll(t, srv.store, nil, false, "Tea", "Coffee")

	w := get(t, srv.Handler(), "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Best color?") {
		t.Fatalf("expected poll question on home page, got:\n%s", w.Body.String())
	}
}

func TestVoteFormFlow(t *testing.T) {
	srv, conn := newTestServer(t)
	poll := mustCreatePoll(t, srv.store, nil, false)
	handler := srv.Handler()

	w := postForm(t, handler, "/polls/"+poll.ID+"/vote", url.Values{
		"option": {poll.Options[0].ID},
	}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after vote, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/polls/"+poll.ID+"/results" {
		t.Fatalf("expected redirect to results, got %q", location)
	}

	// The same device votes again: no new row, back to the poll page.
	cookies := w.Result().Cookies()
	w = postForm(t, handler, "/polls/"+poll.ID+"/vote", url.Values{
		"option": {poll.Options[1].ID},
	}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after duplicate vote, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/polls/"+poll.ID {
		t.Fatalf("expected redirect back to poll, got %q", location)
	}

	var count int64
	conn.Model(&db.Vote{}).Where("poll_id = ?", poll.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 vote row, got %d", count)
	}
}

func TestVoteWithoutSelection(t *testing.T) {
	srv, conn := newTestServer(t)
	poll := mustCreatePoll(t, srv.store, nil, false)

	w := postForm(t, srv.Handler(), "/polls/"+poll.ID+"/vote", url.Values{}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	var count int64
	conn.Model(&db.Vote{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no vote rows, got %d", count)
	}
}

func TestPrivatePollRedirectsAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)
	owner := mustRegister(t, srv.store, "owner@example.com")
	poll := mustCreatePoll(t, srv.store, &owner.ID, true)
	handler := srv.Handler()

	w := get(t, handler, "/polls/"+poll.ID, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect for anonymous visitor, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); !strings.HasPrefix(location, "/login?") {
		t.Fatalf("expected redirect to login, got %q", location)
	}

	w = postForm(t, handler, "/polls/"+poll.ID+"/vote", url.Values{
		"option": {poll.Options[0].ID},
	}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); !strings.HasPrefix(location, "/login?") {
		t.Fatalf("expected vote redirect to login, got %q", location)
	}
}

func TestResultsAccessControl(t *testing.T) {
	srv, _ := newTestServer(t)
	owner := mustRegister(t, srv.store, "owner@example.com")
	other := mustRegister(t, srv.store, "other@example.com")
	owned := mustCreatePoll(t, srv.store, &owner.ID, false)
	public := mustCreatePoll(t, srv.store, nil, false, "Tea", "Coffee")
	handler := srv.Handler()

	if w := get(t, handler, "/polls/"+public.ID+"/results", nil); w.Code != http.StatusOK {
		t.Fatalf("expected public results to be open, got %d", w.Code)
	}

	w := get(t, handler, "/polls/"+owned.ID+"/results", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected anonymous redirect on owned results, got %d", w.Code)
	}

	w = get(t, handler, "/polls/"+owned.ID+"/results", signIn(t, srv, other.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	w = get(t, handler, "/polls/"+owned.ID+"/results", signIn(t, srv, owner.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected owner to see results, got %d", w.Code)
	}
}

func TestCreatePollForm(t *testing.T) {
	srv, _ := newTestServer(t)
	owner := mustRegister(t, srv.store, "owner@example.com")
	handler := srv.Handler()

	w := postForm(t, handler, "/polls", url.Values{
		"question":       {"Lunch spot?"},
		"option_text":    {"Tacos", "Ramen"},
		"requires_login": {"on"},
	}, signIn(t, srv, owner.ID))
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after create, got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "/polls/") {
		t.Fatalf("expected redirect to the new poll, got %q", location)
	}

	pollID := strings.TrimPrefix(location, "/polls/")
	poll, err := srv.store.GetPoll(pollID)
	if err != nil {
		t.Fatalf("fetch created poll: %v", err)
	}
	if !poll.RequiresLogin || poll.UserID == nil || *poll.UserID != owner.ID {
		t.Fatalf("poll not created as owned private poll: %+v", poll)
	}
}

func TestCreatePollValidationRedirect(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postForm(t, srv.Handler(), "/polls", url.Values{
		"question":    {"Lunch spot?"},
		"option_text": {"Tacos"},
	}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect back to form, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/polls/new" {
		t.Fatalf("expected redirect to /polls/new, got %q", location)
	}
}

func TestEditRequiresOwner(t *testing.T) {
	srv, _ := newTestServer(t)
	owner := mustRegister(t, srv.store, "owner@example.com")
	other := mustRegister(t, srv.store, "other@example.com")
	poll := mustCreatePoll(t, srv.store, &owner.ID, false)
	handler := srv.Handler()

	if w := get(t, handler, "/polls/"+poll.ID+"/edit", nil); w.Code != http.StatusFound {
		t.Fatalf("expected anonymous redirect, got %d", w.Code)
	}
	if w := get(t, handler, "/polls/"+poll.ID+"/edit", signIn(t, srv, other.ID)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}
	if w := get(t, handler, "/polls/"+poll.ID+"/edit", signIn(t, srv, owner.ID)); w.Code != http.StatusOK {
		t.Fatalf("expected owner edit page, got %d", w.Code)
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	w := postForm(t, handler, "/register", url.Values{
		"email":    {"new@example.com"},
		"name":     {"New User"},
		"password": {"longenough"},
	}, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected register redirect to dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}
	cookies := w.Result().Cookies()

	if w := get(t, handler, "/dashboard", cookies); w.Code != http.StatusOK {
		t.Fatalf("expected dashboard for signed-in user, got %d", w.Code)
	}

	w = postForm(t, handler, "/logout", url.Values{}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected logout redirect, got %d", w.Code)
	}
	if w := get(t, handler, "/dashboard", cookies); w.Code != http.StatusFound {
		t.Fatalf("expected dashboard redirect after logout, got %d", w.Code)
	}

	w = postForm(t, handler, "/login", url.Values{
		"email":    {"new@example.com"},
		"password": {"longenough"},
		"from":     {"/dashboard"},
	}, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected login redirect to /dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}

	w = postForm(t, handler, "/login", url.Values{
		"email":    {"new@example.com"},
		"password": {"wrong password"},
	}, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected failed login redirect to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestNotFoundPage(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(t, srv.Handler(), "/polls/no-such-poll", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
