package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// credentialForm is the shared email/password entry used by both the
// sign-in and sign-up screens.
type credentialForm struct {
	email    string
	password string
	focused  int
}

// handleKey consumes editing keys; it returns false for keys it does
// not own so the screen can act on them.
func (f *credentialForm) handleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "shift+tab":
		f.focused = (f.focused + 1) % 2
	case "backspace":
		if f.focused == 0 && len(f.email) > 0 {
			f.email = f.email[:len(f.email)-1]
		} else if f.focused == 1 && len(f.password) > 0 {
			f.password = f.password[:len(f.password)-1]
		}
	case "ctrl+l":
		f.email = ""
		f.password = ""
	default:
		if len(msg.Runes) == 1 {
			if f.focused == 0 {
				f.email += string(msg.Runes)
			} else {
				f.password += string(msg.Runes)
			}
		} else {
			return false
		}
	}
	return true
}

func (f *credentialForm) view(title, subtitle, help string, loading bool, errMsg string) string {
	var b strings.Builder

	center := lipgloss.NewStyle().Width(64).Align(lipgloss.Center)

	b.WriteString(center.Render(TitleStyle.Render(title)))
	b.WriteString("\n")
	b.WriteString(center.Render(SubtitleStyle.Render(subtitle)))
	b.WriteString("\n\n")

	emailStyle := InputStyle
	if f.focused == 0 {
		emailStyle = FocusedInputStyle
	}
	emailField := lipgloss.JoinHorizontal(lipgloss.Center,
		LabelStyle.Render("Email:"),
		emailStyle.Width(40).Render(f.email),
	)
	b.WriteString(center.Render(emailField))
	b.WriteString("\n")

	passwordStyle := InputStyle
	if f.focused == 1 {
		passwordStyle = FocusedInputStyle
	}
	masked := strings.Repeat("•", len(f.password))
	passwordField := lipgloss.JoinHorizontal(lipgloss.Center,
		LabelStyle.Render("Password:"),
		passwordStyle.Width(40).Render(masked),
	)
	b.WriteString(center.Render(passwordField))
	b.WriteString("\n\n")

	if loading {
		b.WriteString(center.Render(InfoStyle.Render("Working...")))
		b.WriteString("\n")
	}
	if errMsg != "" {
		b.WriteString(center.Render(ErrorStyle.Render(errMsg)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(InfoStyle.Render(help)))

	return BoxStyle.Width(68).Render(b.String())
}
