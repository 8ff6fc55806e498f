package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatlite/chatlite/internal/client/chat"
	"github.com/chatlite/chatlite/internal/client/session"
)

type View int

const (
	SigninView View = iota
	SignupView
	ChatView
)

type Model struct {
	currentView View
	signin      *SigninModel
	signup      *SignupModel
	chat        *ChatModel
	session     *session.Store
}

func NewModel(sess *session.Store, convs *chat.Store, responder chat.Responder) Model {
	return Model{
		currentView: SigninView,
		signin:      NewSigninModel(sess),
		signup:      NewSignupModel(sess),
		chat:        NewChatModel(sess, convs, responder),
		session:     sess,
	}
}

func restoreCmd(sess *session.Store) tea.Cmd {
	return func() tea.Msg {
		sess.Restore(context.Background())
		return sessionRestoredMsg{authenticated: sess.State() == session.StateAuthenticated}
	}
}

func signOutCmd(sess *session.Store) tea.Cmd {
	return func() tea.Msg {
		sess.SignOut(context.Background())
		return signedOutMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return restoreCmd(m.session)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionRestoredMsg:
		if msg.authenticated {
			m.currentView = ChatView
		}
		return m, nil

	case authSuccessMsg:
		m.currentView = ChatView
		// Let the form that dispatched reset its spinner too.
		m.signin, _ = m.signin.Update(msg)
		m.signup, _ = m.signup.Update(msg)
		return m, nil

	case unauthorizedMsg:
		m.currentView = SigninView
		m.signin.errMsg = "session expired, please sign in again"
		return m, nil

	case signedOutMsg:
		m.currentView = SigninView
		m.signin.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+s":
			switch m.currentView {
			case SigninView:
				m.currentView = SignupView
				return m, nil
			case SignupView:
				m.currentView = SigninView
				return m, nil
			}

		case "ctrl+o":
			if m.currentView == ChatView {
				return m, signOutCmd(m.session)
			}
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case SigninView:
		m.signin, cmd = m.signin.Update(msg)
	case SignupView:
		m.signup, cmd = m.signup.Update(msg)
	case ChatView:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.currentView {
	case SignupView:
		return m.signup.View()
	case ChatView:
		return m.chat.View()
	default:
		return m.signin.View()
	}
}
