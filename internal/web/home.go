package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Home(flash string, viewer *Viewer, polls []PollSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Home", flash, viewer)
		_, _ = io.WriteString(w, `
      <header class="hero">
        <h1>Ask anything. Count everything.</h1>
        <p>Create a poll in seconds, share the link, and see the results add up.</p>
        <a class="primary button" href="/polls/new">Create a poll</a>
      </header>

      <section class="panel">
        <h2>Open polls</h2>`)
		if len(polls) == 0 {
			_, _ = io.WriteString(w, `
        <p class="muted">No polls yet. Be the first to create one.</p>`)
		} else {
			var b strings.Builder
			b.WriteString(`
        <ul class="poll-list">`)
			for _, poll := range polls {
				b.WriteString(`
          <li class="poll-card">
            <a href="/polls/`)
				b.WriteString(esc(poll.ID))
				b.WriteString(`">`)
				b.WriteString(esc(poll.Question))
				b.WriteString(`</a>`)
				if poll.Description != "" {
					b.WriteString(`
            <p class="muted">`)
					b.WriteString(esc(poll.Description))
					b.WriteString(`</p>`)
				}
				b.WriteString(`
            <span class="meta">`)
				b.WriteString(itoa(poll.OptionCount))
				b.WriteString(` options · `)
				b.WriteString(formatDate(poll.CreatedAt))
				if poll.RequiresLogin {
					b.WriteString(` · sign-in required`)
				}
				b.WriteString(`</span>
          </li>`)
			}
			b.WriteString(`
        </ul>`)
			_, _ = io.WriteString(w, b.String())
		}
		_, _ = io.WriteString(w, `
      </section>`)
		pageEnd(w)
		return nil
	})
}
