package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/secopslab/secwatch/internal/service"
	"github.com/secopslab/secwatch/models"
)

// browseSection selects which record table the browser shows.
type browseSection int

const (
	sectionIncidents browseSection = iota
	sectionTickets
	sectionDatasets
)

var sectionLabels = map[browseSection]string{
	sectionIncidents: "Incidents",
	sectionTickets:   "Tickets",
	sectionDatasets:  "Datasets",
}

// Incident form field order, shared by the add and edit flows.
const (
	fieldIncidentID = iota
	fieldTimestamp
	fieldSeverity
	fieldCategory
	fieldStatus
	fieldDescription
	incidentFieldCount
)

var incidentFieldLabels = [incidentFieldCount]string{
	"Incident ID", "Timestamp", "Severity", "Category", "Status", "Description",
}

// mainLoopModel is the record browser shown after login. Incidents support
// full management for admin sessions; tickets and dataset metadata are
// browse-only, like the original dashboards.
type mainLoopModel struct {
	ctx      context.Context
	services *service.Services
	username string
	role     models.Role

	section   browseSection
	incidents []models.CyberIncident
	tickets   []models.ITTicket
	datasets  []models.DatasetMeta
	idx       int
	loading   bool
	status    string
	errMsg    string
	detail    bool

	adding    bool
	addInputs []textinput.Model
	addFocus  int
	addSaving bool
	addErr    string

	editing        bool
	editInputs     []textinput.Model
	editFocus      int
	editSubmitting bool
	editIncident   models.CyberIncident

	confirming      bool
	confirmIncident models.CyberIncident

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.Services, username string, role models.Role) mainLoopModel {
	if username != "" {
		setSession(username, role)
	}

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		username: username,
		role:     role,
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadSection()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case incidentsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.incidents = msg.incidents
		m.clampIdx()
		return m, nil
	case ticketsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.tickets = msg.tickets
		m.clampIdx()
		return m, nil
	case datasetsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.datasets = msg.datasets
		m.clampIdx()
		return m, nil
	case incidentSavedMsg:
		m.addSaving = false
		if msg.err != nil {
			m.addErr = msg.err.Error()
			return m, nil
		}
		m.resetAddFlow()
		m.status = "Incident created"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadSection()
	case incidentUpdatedMsg:
		m.editSubmitting = false
		if msg.err != nil {
			m.errMsg = "update failed: " + msg.err.Error()
			return m, nil
		}
		m.editing = false
		if msg.changed {
			m.status = "Incident updated"
		} else {
			m.status = "Nothing changed"
		}
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadSection()
	case incidentDeletedMsg:
		if msg.err != nil {
			m.errMsg = "delete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.deleted {
			m.status = "Incident deleted"
		} else {
			m.status = "Incident was already gone"
		}
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadSection()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.adding {
			return m.updateAdding(msg)
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if !m.adding && !m.editing && !m.confirming {
			return m, tea.Quit
		}
	}

	if m.confirming {
		return m.updateConfirming(keyMsg)
	}
	if m.adding {
		return m.updateAdding(msg)
	}
	if m.editing {
		return m.updateEditing(msg)
	}
	if m.detail {
		return m.updateDetail(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < m.sectionLen()-1 {
			m.idx++
		}
	case "tab":
		m.section = (m.section + 1) % 3
		m.idx = 0
		m.detail = false
		m.status = ""
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadSection()
	case "enter":
		if m.sectionLen() == 0 {
			m.status = "No records"
			return m, nil
		}
		m.detail = true
	case "a":
		if m.section != sectionIncidents {
			return m, nil
		}
		if !m.isAdmin() {
			m.status = "Admin role required"
			return m, nil
		}
		m.startAddFlow()
		return m, textinput.Blink
	case "e":
		if m.section != sectionIncidents {
			return m, nil
		}
		incident, ok := m.currentIncident()
		if !ok {
			m.status = "No records"
			return m, nil
		}
		if !m.isAdmin() {
			m.status = "Admin role required"
			return m, nil
		}
		m.startEdit(incident)
		return m, textinput.Blink
	case "ctrl+d":
		if m.section != sectionIncidents {
			return m, nil
		}
		incident, ok := m.currentIncident()
		if !ok {
			m.status = "No records"
			return m, nil
		}
		if !m.isAdmin() {
			m.status = "Admin role required"
			return m, nil
		}
		m.confirming = true
		m.confirmIncident = incident
		return m, nil
	case "r":
		m.loading = true
		m.status = ""
		return m, m.cmdLoadSection()
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.detail = false
	case "c":
		text, ok := m.detailCopyValue()
		if !ok {
			m.status = "Nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.status = "Copied to clipboard"
	case "e":
		if m.section == sectionIncidents && m.isAdmin() {
			if incident, ok := m.currentIncident(); ok {
				m.detail = false
				m.startEdit(incident)
				return m, textinput.Blink
			}
		}
	}
	return m, nil
}

func (m mainLoopModel) updateConfirming(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "y":
		m.confirming = false
		m.detail = false
		return m, m.cmdDelete(m.confirmIncident.ID)
	case "n", "esc":
		m.confirming = false
		m.status = "Deletion cancelled"
	}
	return m, nil
}

func (m *mainLoopModel) startAddFlow() {
	m.addInputs = newIncidentInputs(models.CyberIncident{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}, "leave blank to auto-generate")
	m.addFocus = 0
	m.addInputs[0].Focus()
	m.addSaving = false
	m.addErr = ""
	m.adding = true
	m.status = ""
}

func (m *mainLoopModel) resetAddFlow() {
	m.adding = false
	m.addInputs = nil
	m.addFocus = 0
	m.addSaving = false
	m.addErr = ""
}

func (m mainLoopModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetAddFlow()
			return m, nil
		case "tab":
			m.addFocus = cycleFocus(m.addInputs, m.addFocus, +1)
			return m, nil
		case "shift+tab":
			m.addFocus = cycleFocus(m.addInputs, m.addFocus, -1)
			return m, nil
		case "enter":
			if m.addSaving {
				return m, nil
			}

			incident := incidentFromInputs(m.addInputs)
			if strings.TrimSpace(incident.Description) == "" {
				m.addErr = "description is required"
				return m, nil
			}

			m.addErr = ""
			m.addSaving = true
			return m, m.cmdCreate(incident)
		}
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m *mainLoopModel) startEdit(incident models.CyberIncident) {
	m.editInputs = newIncidentInputs(incident, "")
	// the natural key is immutable once assigned
	m.editInputs[fieldIncidentID].Blur()
	m.editFocus = fieldTimestamp
	m.editInputs[m.editFocus].Focus()
	m.editSubmitting = false
	m.editIncident = incident
	m.editing = true
	m.errMsg = ""
	m.status = ""
}

func (m mainLoopModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.editing = false
			return m, nil
		case "tab":
			m.editFocus = cycleEditFocus(m.editInputs, m.editFocus, +1)
			return m, nil
		case "shift+tab":
			m.editFocus = cycleEditFocus(m.editInputs, m.editFocus, -1)
			return m, nil
		case "enter":
			if m.editSubmitting {
				return m, nil
			}

			patch := m.buildPatch()
			m.editSubmitting = true
			return m, m.cmdUpdate(patch)
		}
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	return m, cmd
}

// buildPatch compares the edit inputs against the loaded incident and sets
// only the changed fields, so untouched columns keep their stored values.
func (m mainLoopModel) buildPatch() models.CyberIncidentUpdate {
	patch := models.CyberIncidentUpdate{ID: m.editIncident.ID}

	setIfChanged := func(dst **string, input textinput.Model, current string) {
		value := strings.TrimSpace(input.Value())
		if value != "" && value != current {
			*dst = &value
		}
	}

	setIfChanged(&patch.Timestamp, m.editInputs[fieldTimestamp], m.editIncident.Timestamp)
	setIfChanged(&patch.Severity, m.editInputs[fieldSeverity], m.editIncident.Severity)
	setIfChanged(&patch.Category, m.editInputs[fieldCategory], m.editIncident.Category)
	setIfChanged(&patch.Status, m.editInputs[fieldStatus], m.editIncident.Status)
	setIfChanged(&patch.Description, m.editInputs[fieldDescription], m.editIncident.Description)

	return patch
}

func (m mainLoopModel) cmdLoadSection() tea.Cmd {
	ctx := m.ctx
	services := m.services

	switch m.section {
	case sectionTickets:
		return func() tea.Msg {
			tickets, err := services.TicketService.List(ctx, 0)
			return ticketsLoadedMsg{tickets: tickets, err: err}
		}
	case sectionDatasets:
		return func() tea.Msg {
			datasets, err := services.DatasetService.List(ctx, 0)
			return datasetsLoadedMsg{datasets: datasets, err: err}
		}
	default:
		return func() tea.Msg {
			incidents, err := services.IncidentService.List(ctx, 0)
			return incidentsLoadedMsg{incidents: incidents, err: err}
		}
	}
}

func (m mainLoopModel) cmdCreate(incident models.CyberIncident) tea.Cmd {
	ctx := m.ctx
	svc := m.services.IncidentService

	return func() tea.Msg {
		_, err := svc.Create(ctx, incident)
		return incidentSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdUpdate(patch models.CyberIncidentUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.IncidentService

	return func() tea.Msg {
		changed, err := svc.Update(ctx, patch)
		return incidentUpdatedMsg{changed: changed, err: err}
	}
}

func (m mainLoopModel) cmdDelete(id int64) tea.Cmd {
	ctx := m.ctx
	svc := m.services.IncidentService

	return func() tea.Msg {
		deleted, err := svc.Delete(ctx, id)
		return incidentDeletedMsg{deleted: deleted, err: err}
	}
}

func (m mainLoopModel) isAdmin() bool {
	if s := getSession(); s.role != "" {
		return s.role == models.RoleAdmin
	}
	return m.role == models.RoleAdmin
}

func (m mainLoopModel) sectionLen() int {
	switch m.section {
	case sectionTickets:
		return len(m.tickets)
	case sectionDatasets:
		return len(m.datasets)
	default:
		return len(m.incidents)
	}
}

func (m *mainLoopModel) clampIdx() {
	if m.idx >= m.sectionLen() {
		m.idx = m.sectionLen() - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m mainLoopModel) currentIncident() (models.CyberIncident, bool) {
	if m.section != sectionIncidents || len(m.incidents) == 0 || m.idx >= len(m.incidents) {
		return models.CyberIncident{}, false
	}
	return m.incidents[m.idx], true
}

func (m mainLoopModel) detailCopyValue() (string, bool) {
	switch m.section {
	case sectionIncidents:
		if incident, ok := m.currentIncident(); ok && incident.Description != "" {
			return incident.Description, true
		}
	case sectionTickets:
		if m.idx < len(m.tickets) && m.tickets[m.idx].Description != "" {
			return m.tickets[m.idx].Description, true
		}
	case sectionDatasets:
		if m.idx < len(m.datasets) && m.datasets[m.idx].Name != "" {
			return m.datasets[m.idx].Name, true
		}
	}
	return "", false
}

func newIncidentInputs(incident models.CyberIncident, keyPlaceholder string) []textinput.Model {
	values := [incidentFieldCount]string{
		incident.IncidentID, incident.Timestamp, incident.Severity,
		incident.Category, incident.Status, incident.Description,
	}

	inputs := make([]textinput.Model, incidentFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = strings.ToLower(incidentFieldLabels[i])
		in.Width = 44
		in.SetValue(values[i])
		inputs[i] = in
	}
	if keyPlaceholder != "" {
		inputs[fieldIncidentID].Placeholder = keyPlaceholder
	}
	return inputs
}

func incidentFromInputs(inputs []textinput.Model) models.CyberIncident {
	return models.CyberIncident{
		IncidentID:  strings.TrimSpace(inputs[fieldIncidentID].Value()),
		Timestamp:   strings.TrimSpace(inputs[fieldTimestamp].Value()),
		Severity:    strings.TrimSpace(inputs[fieldSeverity].Value()),
		Category:    strings.TrimSpace(inputs[fieldCategory].Value()),
		Status:      strings.TrimSpace(inputs[fieldStatus].Value()),
		Description: strings.TrimSpace(inputs[fieldDescription].Value()),
	}
}

func cycleFocus(inputs []textinput.Model, focus, dir int) int {
	inputs[focus].Blur()
	focus = (focus + dir + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}

// cycleEditFocus skips the immutable incident ID field.
func cycleEditFocus(inputs []textinput.Model, focus, dir int) int {
	inputs[focus].Blur()
	for {
		focus = (focus + dir + len(inputs)) % len(inputs)
		if focus != fieldIncidentID {
			break
		}
	}
	inputs[focus].Focus()
	return focus
}
