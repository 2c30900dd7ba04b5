package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Not found", "", nil)
		_, _ = io.WriteString(w, `
      <section class="panel narrow">
        <h1>Poll not found</h1>
        <p class="muted">The poll you are looking for does not exist or has been deleted.</p>
        <a href="/">Back to home</a>
      </section>`)
		pageEnd(w)
		return nil
	})
}

func Forbidden(viewer *Viewer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Access denied", "", viewer)
		_, _ = io.WriteString(w, `
      <section class="panel narrow">
        <h1>Access denied</h1>
        <p class="muted">Only the poll owner can view this page.</p>
        <a href="/">Back to home</a>
      </section>`)
		pageEnd(w)
		return nil
	})
}
