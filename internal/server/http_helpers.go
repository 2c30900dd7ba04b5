package server

import (
	"net/http"
	"net/url"
	"strings"
)

// redirectToLogin sends the visitor to the login page, remembering where
// they came from so login can return them there.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Path
	http.Redirect(w, r, "/login?from="+url.QueryEscape(from), http.StatusFound)
}

// safeReturnPath accepts only local paths for post-login redirects.
func safeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
