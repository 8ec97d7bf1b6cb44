package views

import (
	"strings"

	"github.com/jlindgren/wayfarer/internal/domain"
)

type ProfileViewModel struct {
	profile  *domain.Profile
	loading  bool
	errorMsg string
	width    int
	height   int
}

func NewProfileView() *ProfileViewModel {
	return &ProfileViewModel{}
}

func (m *ProfileViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ProfileViewModel) SetLoading(loading bool) {
	m.loading = loading
	if loading {
		m.errorMsg = ""
	}
}

func (m *ProfileViewModel) SetProfile(profile *domain.Profile) {
	m.profile = profile
	m.loading = false
	m.errorMsg = ""
}

func (m *ProfileViewModel) SetError(msg string) {
	m.loading = false
	m.errorMsg = msg
}

func (m *ProfileViewModel) View() string {
	if m.loading {
		return "\n  " + formHelpStyle.Render("Loading profile...") + "\n"
	}

	if m.errorMsg != "" {
		return "\n  " + formErrorStyle.Render(m.errorMsg) + "\n" +
			"  " + formHelpStyle.Render("r: retry") + "\n"
	}

	if m.profile == nil {
		return "\n  " + formErrorStyle.Render("No profile data") + "\n"
	}

	var b strings.Builder
	b.WriteString(formTitleStyle.Render(m.profile.Name))
	b.WriteString("\n")
	b.WriteString(formHelpStyle.Render(m.profile.Email))
	b.WriteString("\n")

	return formBoxStyle.Render(b.String())
}
