package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	formTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Bold(true)
	formHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	formErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	formInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	formBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0EA5E9")).
			Padding(1, 2)
)

type LoginViewModel struct {
	emailInput    textinput.Model
	passwordInput textinput.Model
	inputFocus    int
	errorMsg      string
	infoMsg       string
	submitting    bool
	width         int
	height        int
}

func NewLoginView() *LoginViewModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = 100

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.CharLimit = 100
	passwordInput.EchoMode = textinput.EchoPassword

	return &LoginViewModel{
		emailInput:    emailInput,
		passwordInput: passwordInput,
	}
}

func (m *LoginViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LoginViewModel) Reset() {
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.errorMsg = ""
	m.infoMsg = ""
	m.submitting = false
	m.inputFocus = 0
	m.emailInput.Focus()
	m.passwordInput.Blur()
}

func (m *LoginViewModel) Credentials() (email, password string) {
	return strings.TrimSpace(m.emailInput.Value()), m.passwordInput.Value()
}

// Validate returns "" when the form can be submitted.
func (m *LoginViewModel) Validate() string {
	email, password := m.Credentials()
	if email == "" || password == "" {
		return "Please enter email & password"
	}
	return ""
}

func (m *LoginViewModel) SetError(msg string) {
	m.errorMsg = msg
	m.submitting = false
}

func (m *LoginViewModel) SetInfo(msg string) {
	m.infoMsg = msg
}

func (m *LoginViewModel) SetSubmitting(submitting bool) {
	m.submitting = submitting
	if submitting {
		m.errorMsg = ""
	}
}

func (m *LoginViewModel) IsSubmitting() bool {
	return m.submitting
}

func (m *LoginViewModel) Update(msg tea.Msg) tea.Cmd {
	if m.submitting {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.nextInput()
			return nil
		case "shift+tab", "up":
			m.nextInput()
			return nil
		}
	}

	var cmd tea.Cmd
	switch m.inputFocus {
	case 0:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case 1:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return cmd
}

func (m *LoginViewModel) nextInput() {
	if m.inputFocus == 0 {
		m.inputFocus = 1
		m.emailInput.Blur()
		m.passwordInput.Focus()
	} else {
		m.inputFocus = 0
		m.passwordInput.Blur()
		m.emailInput.Focus()
	}
}

func (m *LoginViewModel) View() string {
	var b strings.Builder

	b.WriteString(formTitleStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n" + formErrorStyle.Render(m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n" + formInfoStyle.Render(m.infoMsg))
	}
	if m.submitting {
		b.WriteString("\n" + formHelpStyle.Render("Logging in..."))
	} else {
		b.WriteString("\n" + formHelpStyle.Render("enter: submit • tab: next field • esc: back"))
	}

	return formBoxStyle.Render(b.String())
}
