package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/secopslab/secwatch/models"
)

// NavigateTo switches the active page of the RootModel router. Payload, if
// set, is delivered to the target page as its first message.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the authentication flow.
type LoginResult struct {
	Username string
	Role     models.Role
	Err      error
}

// RegisterSuccessNotice is shown on the menu after a successful registration.
type RegisterSuccessNotice struct {
	Username string
}

type incidentsLoadedMsg struct {
	incidents []models.CyberIncident
	err       error
}

type ticketsLoadedMsg struct {
	tickets []models.ITTicket
	err     error
}

type datasetsLoadedMsg struct {
	datasets []models.DatasetMeta
	err      error
}

type incidentSavedMsg struct {
	err error
}

type incidentUpdatedMsg struct {
	changed bool
	err     error
}

type incidentDeletedMsg struct {
	deleted bool
	err     error
}
