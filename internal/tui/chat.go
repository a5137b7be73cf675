package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// returns a chat screen for the given session
func NewChatModel(client *APIClient, session sessionPayload) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "describe the component you want..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	m := &ChatModel{
		session: session,
		input:   ti,
		spinner: sp,
		client:  client,
	}

	// resume from the latest snapshot when reopening a session
	if len(session.ChatHistory) > 0 {
		last := session.ChatHistory[len(session.ChatHistory)-1]
		m.markup = last.Code.Markup
		m.style = last.Code.Style
	}

	return m
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackToSessionsMsg{} }

		case "ctrl+e":
			if m.markup == "" {
				m.statusText = "nothing to export yet"
				return m, nil
			}
			m.statusText = "exporting..."
			return m, exportSession(m.client, m.session.ID, m.session.Title)

		case "enter":
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" || m.isFetching {
				return m, nil
			}

			m.isFetching = true
			m.statusText = ""
			m.input.SetValue("")

			return m, tea.Batch(m.spinner.Tick, m.sendPrompt(prompt))

		case "up", "down", "pgup", "pgdown":
			if m.ready {
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10

		viewportHeight := msg.Height - 8
		if viewportHeight < 5 {
			viewportHeight = 5
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-8),
			)
			if err == nil {
				m.glamourRenderer = renderer
			}
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}

		m.refreshViewport()
		return m, nil

	case GenerateResultMsg:
		m.isFetching = false
		m.markup = msg.result.Markup
		m.style = msg.result.Style

		// titles are derived server-side from the first prompt
		if m.session.Title == "Untitled" {
			m.session.Title = deriveLocalTitle(msg.prompt)
		}

		m.session.ChatHistory = append(m.session.ChatHistory, historyEntry{
			UserPrompt: msg.prompt,
			AIResponse: msg.result.RawReply,
			Code: codePayload{
				Markup: msg.result.Markup,
				Style:  msg.result.Style,
			},
		})

		m.refreshViewport()
		m.viewport.GotoBottom()
		m.input.Focus()
		return m, nil

	case GenerateErrorMsg:
		m.isFetching = false
		m.statusText = fmt.Sprintf("generation failed: %v", msg.err)
		m.input.Focus()
		return m, nil

	case ExportDoneMsg:
		m.statusText = fmt.Sprintf("saved %s", msg.filename)
		return m, nil

	case ExportErrorMsg:
		m.statusText = fmt.Sprintf("export failed: %v", msg.err)
		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// picks generate or update depending on whether code exists yet
func (m *ChatModel) sendPrompt(prompt string) tea.Cmd {
	client := m.client
	sessionID := m.session.ID
	markup := m.markup
	style := m.style

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		var result *generateResponse
		var err error
		if markup == "" {
			result, err = client.Generate(ctx, prompt, sessionID)
		} else {
			result, err = client.Update(ctx, prompt, markup, style, sessionID)
		}

		if err != nil {
			return GenerateErrorMsg{prompt: prompt, err: err}
		}

		return GenerateResultMsg{prompt: prompt, result: result}
	}
}

// rebuilds the conversation transcript shown in the viewport
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	if len(m.session.ChatHistory) == 0 {
		m.viewport.SetContent(infoStyle.Render("describe a component below and press enter to generate it."))
		return
	}

	var b strings.Builder
	for _, entry := range m.session.ChatHistory {
		b.WriteString(labelFocusedStyle.Render("you: "))
		b.WriteString(entry.UserPrompt)
		b.WriteString("\n\n")

		reply := fmt.Sprintf("```jsx\n%s\n```", entry.Code.Markup)
		if entry.Code.Style != "" {
			reply += fmt.Sprintf("\n```css\n%s\n```", entry.Code.Style)
		}

		if m.glamourRenderer != nil {
			if rendered, err := m.glamourRenderer.Render(reply); err == nil {
				reply = rendered
			}
		}

		b.WriteString(reply)
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}

func (m *ChatModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render(m.session.Title)

	help := lipgloss.NewStyle().
		Foreground(colorGray).
		Render("[Enter: Send] [Ctrl+E: Export Zip] [Esc: Sessions] [Ctrl+C: Quit]")

	padding := m.width - lipgloss.Width(header) - lipgloss.Width(help) - 2
	if padding < 1 {
		padding = 1
	}

	b.WriteString(header)
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(help)
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(borderStyle.Width(m.width - 4).Render(m.viewport.View()))
		b.WriteString("\n")
	}

	inputBox := borderStyle.
		Width(m.width - 4).
		Padding(0, 1).
		Render(m.input.View())

	b.WriteString(inputBox)
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View())
		b.WriteString(infoStyle.Render(" generating..."))
	} else if m.statusText != "" {
		b.WriteString(infoStyle.Render(m.statusText))
	}

	return b.String()
}

func exportSession(client *APIClient, sessionID, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		filename, err := client.Export(ctx, sessionID, title)
		if err != nil {
			return ExportErrorMsg{err: err}
		}

		return ExportDoneMsg{filename: filename}
	}
}

// mirrors the server's title derivation so the header updates immediately
func deriveLocalTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > 15 {
		return string(runes[:15]) + "..."
	}

	return prompt
}
