package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func PollVote(flash string, viewer *Viewer, poll PollView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, poll.Question, flash, viewer)
		var b strings.Builder
		b.WriteString(`
      <section class="panel">
        <h1>`)
		b.WriteString(esc(poll.Question))
		b.WriteString(`</h1>`)
		if poll.Description != "" {
			b.WriteString(`
        <p class="muted">`)
			b.WriteString(esc(poll.Description))
			b.WriteString(`</p>`)
		}
		if poll.CanEdit {
			b.WriteString(`
        <div class="owner-tools">
          <a href="/polls/`)
			b.WriteString(esc(poll.ID))
			b.WriteString(`/edit">Edit</a>
          <a href="/polls/`)
			b.WriteString(esc(poll.ID))
			b.WriteString(`/results">Results</a>
          <form class="inline" method="post" action="/polls/`)
			b.WriteString(esc(poll.ID))
			b.WriteString(`/delete">
            <button type="submit" class="link danger">Delete</button>
          </form>
        </div>`)
		}
		if poll.VotedOptionID != "" {
			b.WriteString(`
        <p class="voted-note">You voted on this poll. Your choice is marked below.</p>`)
		}
		b.WriteString(`
        <form method="post" action="/polls/`)
		b.WriteString(esc(poll.ID))
		b.WriteString(`/vote">`)
		for _, option := range poll.Options {
			b.WriteString(`
          <label class="option">
            <input type="radio" name="option" value="`)
			b.WriteString(esc(option.ID))
			b.WriteString(`"`)
			if option.ID == poll.VotedOptionID {
				b.WriteString(` checked`)
			}
			b.WriteString(`/>
            `)
			b.WriteString(esc(option.Text))
			if option.ID == poll.VotedOptionID {
				b.WriteString(` <span class="badge">your vote</span>`)
			}
			b.WriteString(`
          </label>`)
		}
		if poll.VotedOptionID == "" {
			b.WriteString(`
          <button type="submit" class="primary">Cast vote</button>`)
		}
		b.WriteString(`
        </form>
      </section>`)
		_, _ = io.WriteString(w, b.String())
		pageEnd(w)
		return nil
	})
}
