package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func NewApp() *Model {
	client := NewAPIClient()

	return &Model{
		state:    StateLogin,
		client:   client,
		login:    NewLoginModel(client),
		sessions: NewSessionListModel(client),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.login.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case AuthResultMsg:
		m.state = StateSessions
		return m, m.sessions.Init()

	case OpenSessionMsg:
		m.chat = NewChatModel(m.client, msg.session)
		m.state = StateChat
		return m, m.chat.Init()

	case BackToSessionsMsg:
		m.state = StateSessions
		return m, m.sessions.Init()

	case LoggedOutMsg:
		m.client.Logout()
		m.login = NewLoginModel(m.client)
		m.state = StateLogin
		return m, m.login.Init()
	}

	switch m.state {
	case StateLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	case StateSessions:
		var cmd tea.Cmd
		m.sessions, cmd = m.sessions.Update(msg)
		return m, cmd

	case StateChat:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateLogin:
		return m.login.View()

	case StateSessions:
		return m.sessions.View()

	case StateChat:
		return m.chat.View()

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to exit\n", err)
}
