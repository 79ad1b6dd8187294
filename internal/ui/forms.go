package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bingeverse/internal/session"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// form is a vertical stack of text inputs with a single inline error line.
type form struct {
	title  string
	inputs []textinput.Model
	focus  int
	err    string
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 32
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newSignInForm() *form {
	f := &form{
		title:  "Sign In",
		inputs: []textinput.Model{newInput("Email", false), newInput("Password", true)},
	}
	f.inputs[0].Focus()
	return f
}

func newSignUpForm() *form {
	f := &form{
		title: "Sign Up",
		inputs: []textinput.Model{
			newInput("Email", false),
			newInput("Password", true),
			newInput("Confirm password", true),
		},
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// credentials reads the sign-in fields.
func (f *form) credentials() session.Credentials {
	return session.Credentials{Email: f.value(0), Password: f.value(1)}
}

// registration reads the sign-up fields.
func (f *form) registration() session.Registration {
	return session.Registration{Email: f.value(0), Password: f.value(1), Confirm: f.value(2)}
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) last() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.err = ""
	f.inputs[0].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := in.Placeholder
		if i == f.focus {
			label = styles.accent.Render(label)
		} else {
			label = styles.muted.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString(styles.err.Render(f.err) + "\n")
	}
	return styles.panel.Render(b.String())
}

// formError maps session failures to the messages shown under the form.
func formError(err error) string {
	switch {
	case errors.Is(err, shared.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, shared.ErrInvalidCredentials):
		_, detail, ok := strings.Cut(err.Error(), ": ")
		detail = strings.TrimSpace(detail)
		if !ok || detail == "" {
			return "Please fill in all fields."
		}
		return strings.ToUpper(detail[:1]) + detail[1:] + "."
	default:
		return err.Error()
	}
}
