package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// returns a new login form
func NewLoginModel(client *APIClient) *LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.Width = 40

	name := textinput.New()
	name.Placeholder = "display name (optional)"
	name.Prompt = ""
	name.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	return &LoginModel{
		emailInput:    email,
		passwordInput: password,
		nameInput:     name,
		spinner:       sp,
		client:        client,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (*LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.isFetching {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			m.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
			return m, nil

		case "ctrl+t":
			m.signupMode = !m.signupMode
			m.errText = ""
			return m, nil

		case "enter":
			return m, m.submit()
		}

	case AuthErrorMsg:
		m.isFetching = false
		m.errText = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.emailInput, cmd = m.emailInput.Update(msg)
	cmds = append(cmds, cmd)
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	cmds = append(cmds, cmd)
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// moves focus across the visible inputs
func (m *LoginModel) cycleFocus(backwards bool) {
	fieldCount := 2
	if m.signupMode {
		fieldCount = 3
	}

	if backwards {
		m.focusIndex = (m.focusIndex + fieldCount - 1) % fieldCount
	} else {
		m.focusIndex = (m.focusIndex + 1) % fieldCount
	}

	m.emailInput.Blur()
	m.passwordInput.Blur()
	m.nameInput.Blur()

	switch m.focusIndex {
	case 0:
		m.emailInput.Focus()
	case 1:
		m.passwordInput.Focus()
	case 2:
		m.nameInput.Focus()
	}
}

func (m *LoginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()

	if email == "" || password == "" {
		m.errText = "email and password are required"
		return nil
	}

	m.errText = ""
	m.isFetching = true

	name := strings.TrimSpace(m.nameInput.Value())
	signupMode := m.signupMode
	client := m.client

	request := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
		defer cancel()

		var user *userPayload
		var err error
		if signupMode {
			user, err = client.Signup(ctx, email, name, password)
		} else {
			user, err = client.Login(ctx, email, password)
		}

		if err != nil {
			return AuthErrorMsg{err: err}
		}

		return AuthResultMsg{user: user}
	}

	return tea.Batch(m.spinner.Tick, request)
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("describe UI components, get React code"))
	b.WriteString("\n\n")

	mode := "LOGIN"
	if m.signupMode {
		mode = "SIGN UP"
	}
	b.WriteString(labelFocusedStyle.Render(mode))
	b.WriteString("\n\n")

	b.WriteString(m.fieldView("email", m.emailInput, m.focusIndex == 0))
	b.WriteString(m.fieldView("password", m.passwordInput, m.focusIndex == 1))

	if m.signupMode {
		b.WriteString(m.fieldView("name", m.nameInput, m.focusIndex == 2))
	}

	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View())
		b.WriteString(infoStyle.Render(" authenticating..."))
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[Tab: Next Field] [Ctrl+T: Toggle Login/Signup] [Enter: Submit] [Ctrl+C: Quit]"))

	return b.String()
}

func (m *LoginModel) fieldView(label string, input textinput.Model, focused bool) string {
	style := labelStyle
	if focused {
		style = labelFocusedStyle
	}

	return style.Render("  "+label+": ") + input.View() + "\n"
}
