package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jlindgren/wayfarer/internal/api"
	"github.com/jlindgren/wayfarer/internal/domain"
	"github.com/jlindgren/wayfarer/internal/saved"
	"github.com/jlindgren/wayfarer/internal/session"
	"github.com/jlindgren/wayfarer/internal/ui/components"
	"github.com/jlindgren/wayfarer/internal/ui/views"
)

type ViewState int

const (
	ViewWelcome ViewState = iota
	ViewLogin
	ViewSignup
	ViewTrips
	ViewRecommendations
	ViewProfile
)

func (s ViewState) String() string {
	switch s {
	case ViewLogin:
		return "Login"
	case ViewSignup:
		return "Signup"
	case ViewTrips:
		return "Trips"
	case ViewRecommendations:
		return "Recommendations"
	case ViewProfile:
		return "Profile"
	default:
		return "Welcome"
	}
}

type Model struct {
	state     ViewState
	width     int
	height    int
	topBar    *components.TopBarModel
	statusBar *components.StatusBarModel

	loginView   *views.LoginViewModel
	signupView  *views.SignupViewModel
	tripsView   *views.TripsViewModel
	recsView    *views.RecommendationsViewModel
	profileView *views.ProfileViewModel
	logsView    *views.LogsViewModel

	session *session.Manager
	api     domain.TravelAPI
	saved   *saved.Controller
	ctx     context.Context
}

// NewModel builds the application model. The session must already be
// bootstrapped: the initial view depends on the resolved state, and no
// authenticated call is issued before that resolution.
func NewModel(sess *session.Manager, api domain.TravelAPI, savedCtrl *saved.Controller) Model {
	initial := ViewWelcome
	if sess.Current() == domain.StateAuthenticated {
		initial = ViewTrips
	}

	return Model{
		state:       initial,
		topBar:      components.NewTopBar(),
		statusBar:   components.NewStatusBar(),
		loginView:   views.NewLoginView(),
		signupView:  views.NewSignupView(),
		tripsView:   views.NewTripsView(),
		recsView:    views.NewRecommendationsView(),
		profileView: views.NewProfileView(),
		logsView:    views.NewLogsView(),
		session:     sess,
		api:         api,
		saved:       savedCtrl,
		ctx:         context.Background(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.state == ViewTrips {
		return m.loadTripsCmd()
	}
	return nil
}

type loginResultMsg struct {
	result *domain.AuthResult
	err    error
}

type signupResultMsg struct {
	result *domain.AuthResult
	err    error
}

type tripsLoadedMsg struct {
	trips []domain.Trip
	err   error
}

type recommendationsLoadedMsg struct {
	recs []domain.Trip
	err  error
}

type profileLoadedMsg struct {
	profile *domain.Profile
	err     error
}

type toggleResolvedMsg struct {
	tripID string
	err    error
}

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Login(m.ctx, email, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m Model) signup(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Signup(m.ctx, name, email, password)
		return signupResultMsg{result: result, err: err}
	}
}

func (m Model) loadTrips() tea.Cmd {
	return func() tea.Msg {
		trips, err := m.api.Trips(m.ctx)
		if err != nil {
			return tripsLoadedMsg{err: err}
		}
		if err := m.saved.Load(m.ctx); err != nil {
			return tripsLoadedMsg{trips: trips, err: err}
		}
		return tripsLoadedMsg{trips: trips}
	}
}

func (m Model) loadRecommendations() tea.Cmd {
	return func() tea.Msg {
		recs, err := m.api.Recommendations(m.ctx)
		return recommendationsLoadedMsg{recs: recs, err: err}
	}
}

func (m Model) loadProfile() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.api.Profile(m.ctx)
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (m Model) finishToggle(tripID string) tea.Cmd {
	return func() tea.Msg {
		return toggleResolvedMsg{tripID: tripID, err: m.saved.FinishToggle(m.ctx, tripID)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.loginView.SetSize(msg.Width, msg.Height)
		m.signupView.SetSize(msg.Width, msg.Height)
		m.tripsView.SetSize(msg.Width, msg.Height)
		m.recsView.SetSize(msg.Width, msg.Height)
		m.profileView.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case signupResultMsg:
		return m.handleSignupResult(msg)

	case tripsLoadedMsg:
		return m.handleTripsLoaded(msg)

	case recommendationsLoadedMsg:
		if msg.err != nil {
			if m.isAuthFailure(msg.err) {
				return m.handleAuthFailure()
			}
			m.recsView.SetError("Failed to load recommendations. Please try again.")
			return m, nil
		}
		m.recsView.SetRecommendations(msg.recs)
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			if m.isAuthFailure(msg.err) {
				return m.handleAuthFailure()
			}
			m.profileView.SetError("Could not load profile. Please try again.")
			return m, nil
		}
		m.profileView.SetProfile(msg.profile)
		return m, nil

	case toggleResolvedMsg:
		m.tripsView.RefreshMarkers()
		if msg.err != nil {
			if m.isAuthFailure(msg.err) {
				return m.handleAuthFailure()
			}
			m.statusBar.SetMessage("Could not update saved trips: "+serverMessage(msg.err), true)
		}
		return m, nil
	}

	return m, m.updateActiveView(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.logsView.IsActive() {
		if key == "esc" || key == "ctrl+g" {
			m.logsView.Deactivate()
			return m, nil
		}
		return m, m.logsView.Update(msg)
	}
	if key == "ctrl+g" {
		m.logsView.Activate()
		return m, nil
	}

	switch m.state {
	case ViewWelcome:
		return m.handleWelcomeKey(key)
	case ViewLogin:
		return m.handleLoginKey(msg, key)
	case ViewSignup:
		return m.handleSignupKey(msg, key)
	case ViewTrips:
		return m.handleTripsKey(msg, key)
	case ViewRecommendations:
		return m.handleRecommendationsKey(msg, key)
	case ViewProfile:
		return m.handleProfileKey(key)
	}

	return m, nil
}

func (m Model) handleWelcomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "l", "enter":
		m.state = ViewLogin
		m.loginView.Reset()
		m.statusBar.ClearMessage()
	case "s":
		m.state = ViewSignup
		m.signupView.Reset()
		m.statusBar.ClearMessage()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.state = ViewWelcome
		return m, nil
	case "enter":
		if m.loginView.IsSubmitting() {
			return m, nil
		}
		if errMsg := m.loginView.Validate(); errMsg != "" {
			m.loginView.SetError(errMsg)
			return m, nil
		}
		email, password := m.loginView.Credentials()
		m.loginView.SetSubmitting(true)
		return m, m.login(email, password)
	}
	return m, m.loginView.Update(msg)
}

func (m Model) handleSignupKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.state = ViewWelcome
		return m, nil
	case "enter":
		if m.signupView.IsSubmitting() {
			return m, nil
		}
		if errMsg := m.signupView.Validate(); errMsg != "" {
			m.signupView.SetError(errMsg)
			return m, nil
		}
		name, email, password := m.signupView.Fields()
		m.signupView.SetSubmitting(true)
		return m, m.signup(name, email, password)
	}
	return m, m.signupView.Update(msg)
}

func (m Model) handleTripsKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.loadTripsCmd()
	case "tab":
		m.state = ViewRecommendations
		m.recsView.SetLoading(true)
		return m, m.loadRecommendations()
	case "p":
		m.state = ViewProfile
		m.profileView.SetLoading(true)
		return m, m.loadProfile()
	case "ctrl+l":
		return m.logout()
	case "s", " ":
		tripID := m.tripsView.SelectedTripID()
		if tripID == "" {
			return m, nil
		}
		// Optimistic: the marker flips before the server answers. A second
		// toggle while this one is in flight is silently ignored.
		if !m.saved.StartToggle(tripID) {
			return m, nil
		}
		m.tripsView.RefreshMarkers()
		return m, m.finishToggle(tripID)
	}
	return m, m.tripsView.Update(msg)
}

func (m Model) handleRecommendationsKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "tab", "esc":
		m.state = ViewTrips
		return m, nil
	case "r":
		m.recsView.SetLoading(true)
		return m, m.loadRecommendations()
	case "ctrl+l":
		return m.logout()
	}
	return m, m.recsView.Update(msg)
}

func (m Model) handleProfileKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = ViewTrips
		return m, nil
	case "r":
		m.profileView.SetLoading(true)
		return m, m.loadProfile()
	case "ctrl+l":
		return m.logout()
	}
	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// A 401 here means bad credentials, not an expired session.
		if m.isAuthFailure(msg.err) {
			m.loginView.SetError("Login failed: invalid email or password")
			return m, nil
		}
		m.loginView.SetError("Login failed: " + serverMessage(msg.err))
		return m, nil
	}
	if msg.result.Token == "" {
		m.loginView.SetError("Login failed: no token received")
		return m, nil
	}

	if err := m.session.SetToken(msg.result.Token); err != nil {
		m.loginView.SetError("Login failed: " + err.Error())
		return m, nil
	}

	m.statusBar.ClearMessage()
	m.state = ViewTrips
	return m, m.loadTripsCmd()
}

func (m Model) handleSignupResult(msg signupResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.signupView.SetError("Signup failed: " + serverMessage(msg.err))
		return m, nil
	}
	if !msg.result.Success {
		reason := msg.result.Message
		if reason == "" {
			reason = "unknown error"
		}
		m.signupView.SetError("Signup failed: " + reason)
		return m, nil
	}

	if msg.result.Token == "" {
		// Registered but not logged in.
		m.state = ViewLogin
		m.loginView.Reset()
		m.loginView.SetInfo("Signup successful, you can now log in")
		return m, nil
	}

	if err := m.session.SetToken(msg.result.Token); err != nil {
		m.signupView.SetError("Signup failed: " + err.Error())
		return m, nil
	}

	m.state = ViewTrips
	return m, m.loadTripsCmd()
}

func (m Model) handleTripsLoaded(msg tripsLoadedMsg) (tea.Model, tea.Cmd) {
	m.tripsView.SetLoading(false)

	if msg.err != nil && m.isAuthFailure(msg.err) {
		return m.handleAuthFailure()
	}

	if msg.trips != nil {
		m.tripsView.SetTrips(msg.trips, m.saved.IsSaved)
	}
	if msg.err != nil {
		m.statusBar.SetMessage("Failed to load trips: "+serverMessage(msg.err), true)
	} else {
		m.statusBar.ClearMessage()
	}
	return m, nil
}

// loadTripsCmd starts the listing + saved-set load; the returned command
// also drives the loading spinner. The caller is responsible for having
// switched to the trips view.
func (m Model) loadTripsCmd() tea.Cmd {
	spin := m.tripsView.SetLoading(true)
	return tea.Batch(spin, m.loadTrips())
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.session.Invalidate()
	m.state = ViewWelcome
	m.statusBar.SetMessage("Logged out", false)
	return m, nil
}

// handleAuthFailure routes back to the welcome screen after the backend has
// rejected the credential. The API client has already invalidated the
// session by the time the error reaches the UI.
func (m Model) handleAuthFailure() (tea.Model, tea.Cmd) {
	m.state = ViewWelcome
	m.statusBar.SetMessage("Session expired, please log in again", true)
	return m, nil
}

func (m Model) isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired)
}

func (m Model) updateActiveView(msg tea.Msg) tea.Cmd {
	switch m.state {
	case ViewLogin:
		return m.loginView.Update(msg)
	case ViewSignup:
		return m.signupView.Update(msg)
	case ViewTrips:
		return m.tripsView.Update(msg)
	case ViewRecommendations:
		return m.recsView.Update(msg)
	}
	return nil
}

func (m Model) shortcuts() []string {
	switch m.state {
	case ViewWelcome:
		return []string{"l log in", "s sign up", "q quit"}
	case ViewLogin, ViewSignup:
		return []string{"enter submit", "esc back"}
	case ViewTrips:
		return []string{"s save/unsave", "r reload", "tab recommendations", "p profile", "ctrl+l log out", "q quit"}
	case ViewRecommendations:
		return []string{"r retry", "tab trips", "ctrl+l log out", "q quit"}
	case ViewProfile:
		return []string{"r retry", "esc back", "ctrl+l log out", "q quit"}
	}
	return nil
}

func (m Model) welcomeView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Welcome to Wayfarer"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Plan trips, browse recommendations, save favourites."))
	b.WriteString("\n\n")
	b.WriteString(ListItemStyle.Render("l — log in"))
	b.WriteString("\n")
	b.WriteString(ListItemStyle.Render("s — sign up"))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("q: quit"))
	return b.String()
}

func (m Model) View() string {
	m.topBar.SetView(m.state.String())
	m.topBar.SetSession(m.session.Current().String())
	m.topBar.SetShortcuts(m.shortcuts())

	var body string
	if m.logsView.IsActive() {
		body = m.logsView.View()
	} else {
		switch m.state {
		case ViewWelcome:
			body = m.welcomeView()
		case ViewLogin:
			body = m.loginView.View()
		case ViewSignup:
			body = m.signupView.View()
		case ViewTrips:
			body = m.tripsView.View()
		case ViewRecommendations:
			body = m.recsView.View()
		case ViewProfile:
			body = m.profileView.View()
		}
	}

	return m.topBar.View() + "\n" + body + "\n" + m.statusBar.View()
}

// serverMessage extracts a user-presentable reason from an API error.
func serverMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return "could not reach the server"
	case errors.Is(err, domain.ErrValidation):
		return "invalid input"
	case errors.Is(err, domain.ErrAuthRequired):
		return "authentication required"
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return err.Error()
}
