package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chatlite/chatlite/internal/client/api"
	"github.com/chatlite/chatlite/internal/client/chat"
	"github.com/chatlite/chatlite/internal/client/session"
)

type ChatModel struct {
	session   *session.Store
	convs     *chat.Store
	responder chat.Responder

	input   string
	waiting bool
	notice  string
}

func NewChatModel(sess *session.Store, convs *chat.Store, responder chat.Responder) *ChatModel {
	return &ChatModel{
		session:   sess,
		convs:     convs,
		responder: responder,
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return nil
}

// sendCmd consumes a credit first; the message is only accepted into
// the conversation once the server has deducted for it.
func sendCmd(sess *session.Store, convs *chat.Store, responder chat.Responder, convID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		credits, err := sess.ConsumeCredit(ctx)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return unauthorizedMsg{}
			}
			return sendErrorMsg{message: err.Error()}
		}

		if _, err := convs.Append(convID, chat.RoleUser, content); err != nil {
			return sendErrorMsg{message: err.Error()}
		}

		reply, err := responder.Reply(ctx, content)
		if err != nil {
			return sendErrorMsg{message: err.Error()}
		}
		if _, err := convs.Append(convID, chat.RoleAssistant, reply); err != nil {
			return sendErrorMsg{message: err.Error()}
		}

		return replyMsg{conversationID: convID, credits: credits}
	}
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.waiting = false
		m.notice = ""
		return m, nil

	case sendErrorMsg:
		m.waiting = false
		m.notice = msg.message
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n":
			m.convs.Create("New conversation")
			m.notice = ""
			return m, nil

		case "ctrl+j", "ctrl+k":
			m.cycleConversation(msg.String() == "ctrl+j")
			return m, nil

		case "enter":
			if m.waiting {
				return m, nil
			}
			content := strings.TrimSpace(m.input)
			if content == "" {
				return m, nil
			}
			convID := m.convs.ActiveID()
			if convID == "" {
				convID = m.convs.Create("New conversation").ID
			}
			m.input = ""
			m.waiting = true
			m.notice = ""
			return m, sendCmd(m.session, m.convs, m.responder, convID, content)

		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil

		default:
			if len(msg.Runes) > 0 {
				m.input += string(msg.Runes)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *ChatModel) cycleConversation(forward bool) {
	convs := m.convs.Conversations()
	if len(convs) == 0 {
		return
	}

	active := m.convs.ActiveID()
	idx := 0
	for i, conv := range convs {
		if conv.ID == active {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(convs)
	} else {
		idx = (idx - 1 + len(convs)) % len(convs)
	}
	_ = m.convs.SetActive(convs[idx].ID)
}

func (m *ChatModel) View() string {
	var b strings.Builder

	email := ""
	if user := m.session.User(); user != nil {
		email = user.Email
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		TitleStyle.Render("chatlite"),
		SubtitleStyle.Render("  "+email+"  "),
		CreditStyle.Render(fmt.Sprintf("credits: %d", m.session.Credits())),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	sidebar := m.renderSidebar()
	thread := m.renderThread()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, SidebarStyle.Render(sidebar), " ", thread))
	b.WriteString("\n\n")

	b.WriteString(FocusedInputStyle.Width(76).Render(m.input))
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(InfoStyle.Render("assistant is typing..."))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(NoticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("enter send  •  ctrl+n new chat  •  ctrl+j/ctrl+k switch  •  ctrl+o sign out  •  ctrl+c quit"))
	return b.String()
}

func (m *ChatModel) renderSidebar() string {
	convs := m.convs.Conversations()
	if len(convs) == 0 {
		return InfoStyle.Render("no conversations yet")
	}

	active := m.convs.ActiveID()
	var b strings.Builder
	for _, conv := range convs {
		style := ConvStyle
		if conv.ID == active {
			style = SelectedConvStyle
		}
		b.WriteString(style.Render(conv.Title))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *ChatModel) renderThread() string {
	active := m.convs.ActiveID()
	if active == "" {
		return InfoStyle.Render("start typing to begin a conversation")
	}

	conv, err := m.convs.Get(active)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, msg := range conv.Messages {
		if msg.Role == chat.RoleUser {
			b.WriteString(UserMsgStyle.Render("you: "))
		} else {
			b.WriteString(AssistantMsgStyle.Render("assistant: "))
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}
