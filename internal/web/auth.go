package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Login(flash, from string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Sign in", flash, nil)
		var b strings.Builder
		b.WriteString(`
      <section class="panel narrow">
        <h1>Sign in</h1>
        <form method="post" action="/login">
          <input type="hidden" name="from" value="`)
		b.WriteString(esc(from))
		b.WriteString(`"/>
          <label for="email">Email</label>
          <input id="email" name="email" type="email" autocomplete="email" required/>
          <label for="password">Password</label>
          <input id="password" name="password" type="password" autocomplete="current-password" required/>
          <button type="submit" class="primary">Sign in</button>
        </form>
        <p class="muted">No account yet? <a href="/register">Register</a>.</p>
      </section>`)
		_, _ = io.WriteString(w, b.String())
		pageEnd(w)
		return nil
	})
}

func Register(flash string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageStart(w, "Register", flash, nil)
		_, _ = io.WriteString(w, `
      <section class="panel narrow">
        <h1>Create an account</h1>
        <form method="post" action="/register">
          <label for="name">Name</label>
          <input id="name" name="name" autocomplete="name"/>
          <label for="email">Email</label>
          <input id="email" name="email" type="email" autocomplete="email" required/>
          <label for="password">Password</label>
          <input id="password" name="password" type="password" minlength="8" autocomplete="new-password" required/>
          <button type="submit" class="primary">Register</button>
        </form>
        <p class="muted">Already have an account? <a href="/login">Sign in</a>.</p>
      </section>`)
		pageEnd(w)
		return nil
	})
}
