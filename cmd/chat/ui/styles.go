package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary = lipgloss.Color("#7C6FF0") // violet
	Accent  = lipgloss.Color("#F25D94") // magenta
	Success = lipgloss.Color("#43BF6D")
	Warning = lipgloss.Color("#FFB84D")
	Danger  = lipgloss.Color("#FF5A87")
	Muted   = lipgloss.Color("#6B7B8C")
	Text    = lipgloss.Color("#EDEDED")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(12)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(Warning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	CreditStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(Muted).
			Width(28).
			PaddingRight(1)

	SelectedConvStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	ConvStyle = lipgloss.NewStyle().
			Foreground(Text)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	AssistantMsgStyle = lipgloss.NewStyle().
				Foreground(Text)
)
