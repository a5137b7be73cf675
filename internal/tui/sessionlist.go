package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (i sessionItem) Title() string { return i.session.Title }

func (i sessionItem) Description() string {
	return fmt.Sprintf("%d messages, updated %s",
		len(i.session.ChatHistory),
		i.session.UpdatedAt.Format("2006-01-02 15:04"))
}

func (i sessionItem) FilterValue() string { return i.session.Title }

// returns a new session picker
func NewSessionListModel(client *APIClient) *SessionListModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorPurple).
		BorderLeftForeground(colorPurple)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(colorGray).
		BorderLeftForeground(colorPurple)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "your sessions"
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
			key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	return &SessionListModel{
		list:    l,
		spinner: sp,
		client:  client,
	}
}

func (m *SessionListModel) Init() tea.Cmd {
	m.isFetching = true
	m.errText = ""

	return tea.Batch(m.spinner.Tick, loadSessions(m.client))
}

func (m *SessionListModel) Update(msg tea.Msg) (*SessionListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// let the list's filter input swallow keys while filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "n":
			m.isFetching = true
			return m, tea.Batch(m.spinner.Tick, createSession(m.client))

		case "d":
			if item, ok := m.list.SelectedItem().(sessionItem); ok {
				m.isFetching = true
				return m, tea.Batch(m.spinner.Tick, deleteSession(m.client, item.session.ID))
			}
			return m, nil

		case "ctrl+o":
			return m, func() tea.Msg { return LoggedOutMsg{} }

		case "enter":
			if item, ok := m.list.SelectedItem().(sessionItem); ok {
				session := item.session
				return m, func() tea.Msg { return OpenSessionMsg{session: session} }
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)

	case SessionsLoadedMsg:
		m.isFetching = false
		items := make([]list.Item, 0, len(msg.sessions))
		for _, s := range msg.sessions {
			items = append(items, sessionItem{session: s})
		}
		m.list.SetItems(items)
		return m, nil

	case SessionCreatedMsg:
		m.isFetching = false
		session := *msg.session
		return m, func() tea.Msg { return OpenSessionMsg{session: session} }

	case SessionDeletedMsg:
		m.isFetching = true
		return m, loadSessions(m.client)

	case SessionErrorMsg:
		m.isFetching = false
		m.errText = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m *SessionListModel) View() string {
	view := m.list.View()

	if m.isFetching {
		view += "\n" + m.spinner.View() + infoStyle.Render(" loading...")
	}

	if m.errText != "" {
		view += "\n" + errorStyle.Render(m.errText)
	}

	return view
}

func loadSessions(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		sessions, err := client.ListSessions(ctx)
		if err != nil {
			return SessionErrorMsg{err: err}
		}

		return SessionsLoadedMsg{sessions: sessions}
	}
}

func createSession(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		session, err := client.CreateSession(ctx, "")
		if err != nil {
			return SessionErrorMsg{err: err}
		}

		return SessionCreatedMsg{session: session}
	}
}

func deleteSession(client *APIClient, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		if err := client.DeleteSession(ctx, sessionID); err != nil {
			return SessionErrorMsg{err: err}
		}

		return SessionDeletedMsg{sessionID: sessionID}
	}
}
