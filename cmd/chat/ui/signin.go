package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatlite/chatlite/internal/client/session"
)

type SigninModel struct {
	form    credentialForm
	loading bool
	errMsg  string
	session *session.Store
}

func NewSigninModel(sess *session.Store) *SigninModel {
	return &SigninModel{session: sess}
}

func (m *SigninModel) Init() tea.Cmd {
	return nil
}

func signinCmd(sess *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.SignIn(context.Background(), email, password); err != nil {
			return authErrorMsg{message: err.Error()}
		}
		return authSuccessMsg{}
	}
}

func (m *SigninModel) Update(msg tea.Msg) (*SigninModel, tea.Cmd) {
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
			m.loading = true
			m.errMsg = ""
			m.session.ClearError()
			return m, signinCmd(m.session, m.form.email, m.form.password)
		}

		m.form.handleKey(msg)
	}
	return m, nil
}

func (m *SigninModel) View() string {
	return m.form.view(
		"Sign in",
		fmt.Sprintf("Welcome back. New accounts start with %d credits.", session.DefaultCredits),
		"tab switch  •  enter sign in  •  ctrl+s sign up  •  ctrl+c quit",
		m.loading,
		m.errMsg,
	)
}
