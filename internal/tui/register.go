package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/secopslab/secwatch/internal/service"
	"github.com/secopslab/secwatch/models"
)

type registerDoneMsg struct {
	username string
	err      error
}

// RegisterModel is the Bubble Tea model for the registration screen:
// username, password, password confirmation, and a role selector.
type RegisterModel struct {
	ctx  context.Context
	auth service.AuthService

	inputs     []textinput.Model
	focus      int
	roles      []models.Role
	roleIdx    int
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel]. The role selector defaults to
// the regular user role.
func NewRegisterModel(ctx context.Context, auth service.AuthService) *RegisterModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 72
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	confirmInput := textinput.New()
	confirmInput.Placeholder = "repeat password"
	confirmInput.CharLimit = 72
	confirmInput.Width = 40
	confirmInput.EchoMode = textinput.EchoPassword
	confirmInput.EchoCharacter = '*'

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{usernameInput, passwordInput, confirmInput},
		roles:  []models.Role{models.RoleUser, models.RoleAdmin},
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(registerDoneMsg); ok {
		m.submitting = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}

		m.reset()
		return m, func() tea.Msg {
			return NavigateTo{Page: "menu", Payload: RegisterSuccessNotice{Username: done.username}}
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.reset()
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "left", "right":
			// the role selector is the last focus position
			if m.focus == len(m.inputs) {
				m.roleIdx = (m.roleIdx + 1) % len(m.roles)
				return m, nil
			}
		case "enter":
			if m.submitting {
				return m, nil
			}

			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			confirm := m.inputs[2].Value()
			if username == "" || password == "" {
				m.errMsg = "username and password are required"
				return m, nil
			}
			if password != confirm {
				m.errMsg = "passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(username, password, m.roles[m.roleIdx])
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RegisterModel) View() string {
	out := "Username  : [ " + m.inputs[0].View() + " ]\n"
	out += "Password  : [ " + m.inputs[1].View() + " ]\n"
	out += "Repeat    : [ " + m.inputs[2].View() + " ]\n"

	roleCursor := "  "
	if m.focus == len(m.inputs) {
		roleCursor = "> "
	}
	out += roleCursor + "Role      : " + string(m.roles[m.roleIdx]) + "\n"

	out += "\n" + helpStyle.Render("At least 3 characters for the username; the password needs 6+ characters with a letter and a number.") + "\n"

	if m.submitting {
		out += "\nRegistering...\n"
	}
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.errMsg) + "\n"
	}

	return renderPage("REGISTER", strings.TrimRight(out, "\n"), "tab: next field │ ←/→: role │ enter: submit │ esc: back")
}

func (m *RegisterModel) cmdRegister(username, password string, role models.Role) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		err := auth.Register(ctx, username, password, string(role))
		return registerDoneMsg{username: username, err: err}
	}
}

func (m *RegisterModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.roleIdx = 0
	m.submitting = false
	m.errMsg = ""
}

// focusNext cycles username → password → confirm → role selector.
func (m *RegisterModel) focusNext() {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus + 1) % (len(m.inputs) + 1)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
}

func (m *RegisterModel) focusPrev() {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus - 1 + len(m.inputs) + 1) % (len(m.inputs) + 1)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
}
