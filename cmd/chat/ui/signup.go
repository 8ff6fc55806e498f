package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatlite/chatlite/internal/client/session"
)

type SignupModel struct {
	form    credentialForm
	loading bool
	errMsg  string
	session *session.Store
}

func NewSignupModel(sess *session.Store) *SignupModel {
	return &SignupModel{session: sess}
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(sess *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.SignUp(context.Background(), email, password); err != nil {
			return authErrorMsg{message: err.Error()}
		}
		return authSuccessMsg{}
	}
}

func (m *SignupModel) Update(msg tea.Msg) (*SignupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authErrorMsg:
		m.loading = false
		m.errMsg = msg.message
		return m, nil

	case authSuccessMsg:
		m.loading = false
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if msg.String() == "enter" {
			if m.form.email == "" || m.form.password == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			if len(m.form.password) < 6 {
				m.errMsg = "password must be at least 6 characters long"
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			m.session.ClearError()
			return m, signupCmd(m.session, m.form.email, m.form.password)
		}

		m.form.handleKey(msg)
	}
	return m, nil
}

func (m *SignupModel) View() string {
	return m.form.view(
		"Create account",
		"Passwords need at least 6 characters.",
		"tab switch  •  enter sign up  •  ctrl+s sign in  •  ctrl+c quit",
		m.loading,
		m.errMsg,
	)
}
