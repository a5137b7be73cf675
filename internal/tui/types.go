package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateLogin AppState = iota
	StateSessions
	StateChat
)

// main TUI application model
type Model struct {
	state    AppState
	width    int
	height   int
	err      error
	client   *APIClient
	login    *LoginModel
	sessions *SessionListModel
	chat     *ChatModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// login and signup form
type LoginModel struct {
	emailInput    textinput.Model
	passwordInput textinput.Model
	nameInput     textinput.Model
	signupMode    bool
	focusIndex    int
	isFetching    bool
	spinner       spinner.Model
	errText       string
	client        *APIClient
}

// sent when login or signup completes
type AuthResultMsg struct {
	user *userPayload
}

// sent when login or signup fails
type AuthErrorMsg struct {
	err error
}

// session picker backed by the list bubble
type SessionListModel struct {
	list       list.Model
	isFetching bool
	spinner    spinner.Model
	errText    string
	client     *APIClient
}

// list item wrapping an API session
type sessionItem struct {
	session sessionPayload
}

// sent when the session list loads
type SessionsLoadedMsg struct {
	sessions []sessionPayload
}

// sent when a new session is created
type SessionCreatedMsg struct {
	session *sessionPayload
}

// sent when a session is deleted
type SessionDeletedMsg struct {
	sessionID string
}

// sent when a session request fails
type SessionErrorMsg struct {
	err error
}

// sent to open a session in the chat screen
type OpenSessionMsg struct {
	session sessionPayload
}

// chat and generation screen for one session
type ChatModel struct {
	session         sessionPayload
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	width           int
	height          int
	markup          string
	style           string
	isFetching      bool
	ready           bool
	statusText      string
	client          *APIClient
}

// sent when generation completes
type GenerateResultMsg struct {
	prompt string
	result *generateResponse
}

// sent when generation fails
type GenerateErrorMsg struct {
	prompt string
	err    error
}

// sent when the archive download finishes
type ExportDoneMsg struct {
	filename string
}

// sent when the archive download fails
type ExportErrorMsg struct {
	err error
}

// sent to return to the session list
type BackToSessionsMsg struct{}

// sent to return to the login screen
type LoggedOutMsg struct{}
