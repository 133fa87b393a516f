package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

type authField int

const (
	fieldEmail authField = iota
	fieldPassword
	numAuthFields
)

// authResultMsg carries the outcome of a login or register attempt.
// The root model watches it to flip into the authenticated views.
type authResultMsg struct {
	mode authMode
	err  error
}

type authModel struct {
	session    Session
	mode       authMode
	fields     [numAuthFields]string
	focus      authField
	submitting bool
	errMsg     string
	note       string
}

func newAuthModel(s Session) authModel {
	return authModel{session: s}
}

func (m authModel) Init() tea.Cmd {
	return nil
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		if msg.mode == modeRegister {
			// Account exists now; the user still signs in explicitly.
			m.mode = modeLogin
			m.fields[fieldPassword] = ""
			m.focus = fieldEmail
			m.note = "account created, sign in"
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numAuthFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numAuthFields) % numAuthFields
	case "enter":
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	case "ctrl+r":
		if m.mode == modeLogin {
			m.mode = modeRegister
		} else {
			m.mode = modeLogin
		}
		m.note = ""
	case "backspace":
		f := &m.fields[m.focus]
		*f = editRune(*f, "backspace")
	default:
		key := msg.String()
		if len(key) == 1 {
			m.fields[m.focus] += key
		}
	}
	return m, nil
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	mode := m.mode
	s := m.session

	m.submitting = true
	m.note = ""
	return m, func() tea.Msg {
		var err error
		if mode == modeRegister {
			err = s.Register(context.Background(), email, password)
		} else {
			err = s.Login(context.Background(), email, password)
		}
		return authResultMsg{mode: mode, err: err}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	title := "Sign in"
	action := "create an account instead"
	if m.mode == modeRegister {
		title = "Create account"
		action = "sign in instead"
	}
	b.WriteString("\n  " + sectionHeaderStyle.Render(title) + "\n\n")

	b.WriteString("  " + renderField("email", m.fields[fieldEmail], m.focus == fieldEmail, false) + "\n")
	b.WriteString("  " + renderField("password", m.fields[fieldPassword], m.focus == fieldPassword, true) + "\n\n")

	switch {
	case m.submitting && m.mode == modeRegister:
		b.WriteString("  " + dimStyle.Render("creating account...") + "\n")
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	case m.note != "":
		b.WriteString("  " + statusStyle.Render(m.note) + "\n")
	}

	b.WriteString("\n  " + metaStyle.Render("ctrl+r to "+action) + "\n")
	return b.String()
}
