package tui

import (
	"strings"

	"github.com/bookhavenhq/bookhaven/pkg/validators"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

func newAuthInputs(signup bool) []textinput.Model {
	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	if !signup {
		return []textinput.Model{email, password}
	}

	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.CharLimit = 128
	return []textinput.Model{email, password, name}
}

func (m *Model) focusAuth() tea.Cmd {
	for i := range m.authInputs {
		if i == m.authFocus {
			continue
		}
		m.authInputs[i].Blur()
	}
	return m.authInputs[m.authFocus].Focus()
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.navigate(PageHome)
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.authFocus = (m.authFocus + 1) % len(m.authInputs)
		return m, m.focusAuth()

	case tea.KeyShiftTab, tea.KeyUp:
		m.authFocus = (m.authFocus - 1 + len(m.authInputs)) % len(m.authInputs)
		return m, m.focusAuth()

	case tea.KeyCtrlS:
		m.authSignup = !m.authSignup
		m.authInputs = newAuthInputs(m.authSignup)
		m.authFocus = 0
		return m, m.focusAuth()

	case tea.KeyEnter:
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.authInputs[0].Value())
	password := m.authInputs[1].Value()

	if m.authSignup {
		name := strings.TrimSpace(m.authInputs[2].Value())
		if err := validators.Struct(signupForm{Email: email, Password: password, Name: name}); err != nil {
			m.fail(err)
			return m, nil
		}
		user, err := m.sessions.Signup(m.ctx, email, password, name)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.say("Welcome", "Signed up as "+user.Name+".")
	} else {
		if err := validators.Struct(loginForm{Email: email, Password: password}); err != nil {
			m.fail(err)
			return m, nil
		}
		user, err := m.sessions.Login(m.ctx, email, password)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.say("Welcome Back", "Signed in as "+user.Name+".")
	}

	m.navigate(PageHome)
	return m, nil
}

func (m Model) viewAuth() string {
	var b strings.Builder

	if m.authSignup {
		b.WriteString(m.styles.Title.Render("Create Account"))
	} else {
		b.WriteString(m.styles.Title.Render("Sign In"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("No real account is created; this is a demo."))
	b.WriteString("\n\n")

	labels := []string{"Email", "Password", "Full Name"}
	for i, input := range m.authInputs {
		label := labels[i]
		if i == m.authFocus {
			b.WriteString(m.styles.Accent.Render(label))
		} else {
			b.WriteString(m.styles.Muted.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	toggle := "ctrl+s switch to sign up"
	if m.authSignup {
		toggle = "ctrl+s switch to sign in"
	}
	b.WriteString(m.styles.Help.Render("enter submit • tab next field • " + toggle + " • esc back"))
	return m.styles.Box.Render(b.String())
}
