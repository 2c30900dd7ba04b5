package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func NewPoll(flash string, viewer *Viewer, form PollForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "New poll", flash, viewer)
		writePollForm(w, "/polls", "Create poll", form)
		pageEnd(w)
		return nil
	})
}

func EditPoll(flash string, viewer *Viewer, form PollForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Edit poll", flash, viewer)
		writePollForm(w, "/polls/"+form.PollID, "Save changes", form)
		pageEnd(w)
		return nil
	})
}

func writePollForm(w io.Writer, action, submitLabel string, form PollForm) {
	var b strings.Builder
	b.WriteString(`
      <section class="panel">
        <h1>`)
	b.WriteString(esc(submitLabel))
	b.WriteString(`</h1>
        <form method="post" action="`)
	b.WriteString(esc(action))
	b.WriteString(`" id="pollForm">
          <label for="question">Question</label>
          <input id="question" name="question" maxlength="280" required value="`)
	b.WriteString(esc(form.Question))
	b.WriteString(`"/>
          <label for="description">Description <span class="muted">(optional)</span></label>
          <textarea id="description" name="description" maxlength="1000">`)
	b.WriteString(esc(form.Description))
	b.WriteString(`</textarea>
          <fieldset id="options">
            <legend>Options</legend>`)
	for _, option := range form.Options {
		b.WriteString(`
            <div class="option-row">`)
		if option.ID != "" {
			b.WriteString(`
              <input type="hidden" name="option_id" value="`)
			b.WriteString(esc(option.ID))
			b.WriteString(`"/>`)
		} else {
			b.WriteString(`
              <input type="hidden" name="option_id" value=""/>`)
		}
		b.WriteString(`
              <input name="option_text" maxlength="280" placeholder="Option" value="`)
		b.WriteString(esc(option.Text))
		b.WriteString(`"/>
            </div>`)
	}
	b.WriteString(`
          </fieldset>
          <button type="button" class="secondary" id="addOption">Add option</button>`)
	if form.SignedIn {
		b.WriteString(`
          <label class="check">
            <input type="checkbox" name="requires_login"`)
		if form.RequiresLogin {
			b.WriteString(` checked`)
		}
		b.WriteString(`/>
            Require sign-in to vote (private poll)
          </label>`)
	} else {
		b.WriteString(`
          <p class="muted"><a href="/login?from=/polls/new">Sign in</a> to create a private poll and manage it later.</p>`)
	}
	b.WriteString(`
          <button type="submit" class="primary">`)
	b.WriteString(esc(submitLabel))
	b.WriteString(`</button>
        </form>
      </section>

      <script>
        document.getElementById("addOption").addEventListener("click", () => {
          const row = document.createElement("div");
          row.className = "option-row";
          row.innerHTML = '<input type="hidden" name="option_id" value=""/>' +
            '<input name="option_text" maxlength="280" placeholder="Option"/>';
          document.getElementById("options").appendChild(row);
        });
      </script>`)
	_, _ = io.WriteString(w, b.String())
}
