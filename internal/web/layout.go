package web

import (
	"io"
	"strings"
)

// pageStart writes the shared document shell: head, navbar, and the flash
// banner when one is set. Every page closes with pageEnd.
func pageStart(w io.Writer, title, flash string, viewer *Viewer) {
	var b strings.Builder
	b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`)
	b.WriteString(esc(title))
	b.WriteString(` · Votelyst</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <nav class="navbar">
      <a class="brand" href="/">Votelyst</a>
      <div class="nav-links">
        <a href="/polls/new">New poll</a>`)
	if viewer != nil {
		b.WriteString(`
        <a href="/dashboard">Dashboard</a>
        <form class="inline" method="post" action="/logout">
          <button type="submit" class="link">Sign out</button>
        </form>
        <span class="nav-user">`)
		if viewer.Name != "" {
			b.WriteString(esc(viewer.Name))
		} else {
			b.WriteString(esc(viewer.Email))
		}
		b.WriteString(`</span>`)
	} else {
		b.WriteString(`
        <a href="/login">Sign in</a>
        <a href="/register">Register</a>`)
	}
	b.WriteString(`
      </div>
    </nav>
    <main class="shell">`)
	if flash != "" {
		b.WriteString(`
      <div class="flash">`)
		b.WriteString(esc(flash))
		b.WriteString(`</div>`)
	}
	_, _ = io.WriteString(w, b.String())
}

func pageEnd(w io.Writer) {
	_, _ = io.WriteString(w, `
    </main>
    <footer class="footer">Votelyst — create a poll, share the link, watch the votes.</footer>
  </body>
</html>`)
}
