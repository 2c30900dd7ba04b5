package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Dashboard(flash string, viewer *Viewer, data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Dashboard", flash, viewer)
		var b strings.Builder
		b.WriteString(`
      <section class="panel">
        <h1>Your polls</h1>
        <p class="meta">`)
		b.WriteString(itoa(len(data.Polls)))
		b.WriteString(` polls · `)
		b.WriteString(itoa(data.VoteCount))
		b.WriteString(` votes received</p>`)
		if len(data.Polls) == 0 {
			b.WriteString(`
        <p class="muted">You have no polls yet. <a href="/polls/new">Create one</a>.</p>`)
		} else {
			b.WriteString(`
        <ul class="poll-list">`)
			for _, poll := range data.Polls {
				b.WriteString(`
          <li class="poll-card">
            <a href="/polls/`)
				b.WriteString(esc(poll.ID))
				b.WriteString(`">`)
				b.WriteString(esc(poll.Question))
				b.WriteString(`</a>
            <span class="meta">`)
				b.WriteString(itoa(poll.OptionCount))
				b.WriteString(` options · `)
				b.WriteString(formatDate(poll.CreatedAt))
				if poll.RequiresLogin {
					b.WriteString(` · private`)
				}
				b.WriteString(`</span>
            <div class="owner-tools">
              <a href="/polls/`)
				b.WriteString(esc(poll.ID))
				b.WriteString(`/edit">Edit</a>
              <a href="/polls/`)
				b.WriteString(esc(poll.ID))
				b.WriteString(`/results">Results</a>
            </div>
          </li>`)
			}
			b.WriteString(`
        </ul>`)
		}
		b.WriteString(`
      </section>`)
		if len(data.Activity) > 0 {
			b.WriteString(`
      <section class="panel">
        <h2>Recent activity</h2>
        <ul class="activity">`)
			for _, item := range data.Activity {
				b.WriteString(`
          <li><span class="meta">`)
				b.WriteString(esc(item.When.Format("Jan 2 15:04")))
				b.WriteString(`</span> `)
				b.WriteString(esc(activityLabel(item.Type)))
				b.WriteString(`</li>`)
			}
			b.WriteString(`
        </ul>
      </section>`)
		}
		_, _ = io.WriteString(w, b.String())
		pageEnd(w)
		return nil
	})
}

func activityLabel(eventType string) string {
	switch eventType {
	case "poll.created":
		return "Poll created"
	case "poll.updated":
		return "Poll updated"
	case "poll.deleted":
		return "Poll deleted"
	case "vote.cast":
		return "Vote received"
	default:
		return eventType
	}
}
