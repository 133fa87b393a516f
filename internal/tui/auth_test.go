package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeSession drives the UI without a real token or API.
type fakeSession struct {
	authed      bool
	subject     string
	loginErr    error
	registerErr error
	loggedOut   bool
}

func (s *fakeSession) IsAuthenticated() bool { return s.authed }
func (s *fakeSession) Subject() string       { return s.subject }

func (s *fakeSession) Login(_ context.Context, email, _ string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.authed = true
	s.subject = email
	return nil
}

func (s *fakeSession) Register(_ context.Context, _, _ string) error {
	return s.registerErr
}

func (s *fakeSession) Logout() error {
	s.authed = false
	s.subject = ""
	s.loggedOut = true
	return nil
}

func typeInto(m authModel, text string) authModel {
	for _, r := range text {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

func TestAuthTypingFillsFocusedField(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	m = typeInto(m, "ana@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "hunter2!")

	if m.fields[fieldEmail] != "ana@example.com" {
		t.Errorf("email = %q", m.fields[fieldEmail])
	}
	if m.fields[fieldPassword] != "hunter2!" {
		t.Errorf("password = %q", m.fields[fieldPassword])
	}
}

func TestAuthEnterOnEmailAdvancesFocus(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("enter on the email field must not submit")
	}
	if m.focus != fieldPassword {
		t.Errorf("focus = %v, want password field", m.focus)
	}
}

func TestAuthSubmitRunsLogin(t *testing.T) {
	s := &fakeSession{}
	m := newAuthModel(s)
	m = typeInto(m, "ana@example.com")
	m, _ = m.Update(keyMsg("enter"))
	m = typeInto(m, "longenough")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	msg := cmd()
	res, ok := msg.(authResultMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want authResultMsg", msg)
	}
	if res.err != nil {
		t.Fatalf("login error: %v", res.err)
	}
	if !s.authed {
		t.Error("expected the session to be authenticated")
	}
}

func TestAuthRejectedCredentialsShownVerbatim(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	m, _ = m.Update(authResultMsg{mode: modeLogin, err: errors.New("Incorrect email or password")})

	if !strings.Contains(m.View(), "Incorrect email or password") {
		t.Errorf("expected the server message verbatim, got:\n%s", m.View())
	}
}

func TestAuthModeToggle(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	if m.mode != modeLogin {
		t.Fatal("expected login mode by default")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != modeRegister {
		t.Error("expected register mode after ctrl+r")
	}
	if !strings.Contains(m.View(), "Create account") {
		t.Errorf("expected register title, got:\n%s", m.View())
	}
}

func TestAuthRegisterSuccessFallsBackToLogin(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	m.mode = modeRegister
	m.fields[fieldPassword] = "longenough"
	m, _ = m.Update(authResultMsg{mode: modeRegister})

	if m.mode != modeLogin {
		t.Error("expected a successful registration to switch to sign-in")
	}
	if m.fields[fieldPassword] != "" {
		t.Error("expected the password field to be cleared")
	}
	if !strings.Contains(m.View(), "account created") {
		t.Errorf("expected confirmation note, got:\n%s", m.View())
	}
}

func TestAuthRegisterFailureStaysInRegisterMode(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	m.mode = modeRegister
	m, _ = m.Update(authResultMsg{mode: modeRegister, err: errors.New("Email already registered")})

	if m.mode != modeRegister {
		t.Error("expected to stay in register mode on failure")
	}
	if !strings.Contains(m.View(), "Email already registered") {
		t.Errorf("expected the rejection verbatim, got:\n%s", m.View())
	}
}

func TestAuthKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newAuthModel(&fakeSession{})
	m.submitting = true
	m = typeInto(m, "x")
	if m.fields[fieldEmail] != "" {
		t.Error("typing during submit must be dropped")
	}
}
