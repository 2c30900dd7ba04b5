package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Results(flash string, viewer *Viewer, view ResultsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Results", flash, viewer)
		var b strings.Builder
		b.WriteString(`
      <section class="panel">
        <h1>`)
		b.WriteString(esc(view.Question))
		b.WriteString(`</h1>`)
		if view.Description != "" {
			b.WriteString(`
        <p class="muted">`)
			b.WriteString(esc(view.Description))
			b.WriteString(`</p>`)
		}
		b.WriteString(`
        <p class="meta">`)
		b.WriteString(itoa(view.TotalVotes))
		if view.TotalVotes == 1 {
			b.WriteString(` vote`)
		} else {
			b.WriteString(` votes`)
		}
		b.WriteString(`</p>
        <div class="results">`)
		for _, row := range view.Rows {
			b.WriteString(`
          <div class="result-row">
            <span class="result-label">`)
			b.WriteString(esc(row.Text))
			b.WriteString(`</span>
            <div class="bar-track">
              <div class="bar" style="width: `)
			b.WriteString(formatPercent(row.Percent))
			b.WriteString(`%"></div>
            </div>
            <span class="result-count">`)
			b.WriteString(itoa(row.Count))
			b.WriteString(` (`)
			b.WriteString(formatPercent(row.Percent))
			b.WriteString(`%)</span>
          </div>`)
		}
		b.WriteString(`
        </div>
        <a href="/polls/`)
		b.WriteString(esc(view.ID))
		b.WriteString(`">Back to poll</a>
      </section>`)
		_, _ = io.WriteString(w, b.String())
		pageEnd(w)
		return nil
	})
}
