package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type SignupViewModel struct {
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	inputFocus    int
	errorMsg      string
	submitting    bool
	width         int
	height        int
}

func NewSignupView() *SignupViewModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Name"
	nameInput.CharLimit = 50

	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = 100

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.CharLimit = 100
	passwordInput.EchoMode = textinput.EchoPassword

	return &SignupViewModel{
		nameInput:     nameInput,
		emailInput:    emailInput,
		passwordInput: passwordInput,
	}
}

func (m *SignupViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *SignupViewModel) Reset() {
	m.nameInput.SetValue("")
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.errorMsg = ""
	m.submitting = false
	m.inputFocus = 0
	m.nameInput.Focus()
	m.emailInput.Blur()
	m.passwordInput.Blur()
}

func (m *SignupViewModel) Fields() (name, email, password string) {
	return strings.TrimSpace(m.nameInput.Value()),
		strings.TrimSpace(m.emailInput.Value()),
		m.passwordInput.Value()
}

// Validate returns "" when the form can be submitted.
func (m *SignupViewModel) Validate() string {
	name, email, password := m.Fields()
	if name == "" || email == "" || password == "" {
		return "Please fill all fields"
	}
	return ""
}

func (m *SignupViewModel) SetError(msg string) {
	m.errorMsg = msg
	m.submitting = false
}

func (m *SignupViewModel) SetSubmitting(submitting bool) {
	m.submitting = submitting
	if submitting {
		m.errorMsg = ""
	}
}

func (m *SignupViewModel) IsSubmitting() bool {
	return m.submitting
}

func (m *SignupViewModel) Update(msg tea.Msg) tea.Cmd {
	if m.submitting {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.focusInput(m.inputFocus + 1)
			return nil
		case "shift+tab", "up":
			m.focusInput(m.inputFocus - 1)
			return nil
		}
	}

	var cmd tea.Cmd
	switch m.inputFocus {
	case 0:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case 1:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case 2:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return cmd
}

func (m *SignupViewModel) focusInput(focus int) {
	if focus < 0 {
		focus = 2
	}
	if focus > 2 {
		focus = 0
	}
	m.inputFocus = focus

	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()

	switch focus {
	case 0:
		m.nameInput.Focus()
	case 1:
		m.emailInput.Focus()
	case 2:
		m.passwordInput.Focus()
	}
}

func (m *SignupViewModel) View() string {
	var b strings.Builder

	b.WriteString(formTitleStyle.Render("Sign up"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n" + formErrorStyle.Render(m.errorMsg))
	}
	if m.submitting {
		b.WriteString("\n" + formHelpStyle.Render("Creating account..."))
	} else {
		b.WriteString("\n" + formHelpStyle.Render("enter: submit • tab: next field • esc: back"))
	}

	return formBoxStyle.Render(b.String())
}
