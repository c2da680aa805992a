package tui

import (
	"fmt"
	"strings"
)

func (m mainLoopModel) View() string {
	if m.confirming {
		return m.viewConfirm()
	}
	if m.adding {
		return m.viewAdd()
	}
	if m.editing {
		return m.viewEdit()
	}
	if m.detail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	b.WriteString(m.viewSectionTabs())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return renderPage(m.pageTitle(), b.String(), m.listHotkeys())
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("Status: " + m.status + "\n")
	}
	if m.errMsg != "" || m.status != "" {
		b.WriteString("\n")
	}

	switch m.section {
	case sectionTickets:
		m.viewTicketRows(&b)
	case sectionDatasets:
		m.viewDatasetRows(&b)
	default:
		m.viewIncidentRows(&b)
	}

	return renderPage(m.pageTitle(), strings.TrimRight(b.String(), "\n"), m.listHotkeys())
}

func (m mainLoopModel) viewSectionTabs() string {
	parts := make([]string, 0, 3)
	for _, s := range []browseSection{sectionIncidents, sectionTickets, sectionDatasets} {
		label := sectionLabels[s]
		if s == m.section {
			parts = append(parts, titleStyle.Render("[ "+label+" ]"))
		} else {
			parts = append(parts, "  "+label+"  ")
		}
	}
	return strings.Join(parts, " ")
}

func (m mainLoopModel) viewIncidentRows(b *strings.Builder) {
	if len(m.incidents) == 0 {
		b.WriteString("No incidents\n")
		return
	}

	b.WriteString("Incident ID          │ Timestamp           │ Severity │ Status\n")
	b.WriteString("─────────────────────┼─────────────────────┼──────────┼───────────\n")
	for i, incident := range m.incidents {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		fmt.Fprintf(b, "%s %-18s │ %-19s │ %-8s │ %s\n",
			cursor,
			fitText(incident.IncidentID, 18),
			fitText(incident.Timestamp, 19),
			fitText(incident.Severity, 8),
			valueOrDash(incident.Status),
		)
	}
}

func (m mainLoopModel) viewTicketRows(b *strings.Builder) {
	if len(m.tickets) == 0 {
		b.WriteString("No tickets\n")
		return
	}

	b.WriteString("Ticket ID            │ Priority │ Status       │ Assigned to\n")
	b.WriteString("─────────────────────┼──────────┼──────────────┼─────────────────\n")
	for i, ticket := range m.tickets {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		fmt.Fprintf(b, "%s %-18s │ %-8s │ %-12s │ %s\n",
			cursor,
			fitText(ticket.TicketID, 18),
			fitText(ticket.Priority, 8),
			fitText(ticket.Status, 12),
			valueOrDash(ticket.AssignedTo),
		)
	}
}

func (m mainLoopModel) viewDatasetRows(b *strings.Builder) {
	if len(m.datasets) == 0 {
		b.WriteString("No datasets\n")
		return
	}

	b.WriteString("Dataset ID           │ Name                     │ Rows     │ Uploaded by\n")
	b.WriteString("─────────────────────┼──────────────────────────┼──────────┼─────────────\n")
	for i, meta := range m.datasets {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		fmt.Fprintf(b, "%s %-18s │ %-24s │ %-8d │ %s\n",
			cursor,
			fitText(meta.DatasetID, 18),
			fitText(meta.Name, 24),
			meta.Rows,
			valueOrDash(meta.UploadedBy),
		)
	}
}

func (m mainLoopModel) viewDetail() string {
	var b strings.Builder

	switch m.section {
	case sectionTickets:
		if m.idx >= len(m.tickets) {
			return renderPage("TICKET", "Record not found", "esc: back")
		}
		ticket := m.tickets[m.idx]
		fmt.Fprintf(&b, "Ticket ID   : %s\n", ticket.TicketID)
		fmt.Fprintf(&b, "Priority    : %s\n", valueOrDash(ticket.Priority))
		fmt.Fprintf(&b, "Status      : %s\n", valueOrDash(ticket.Status))
		fmt.Fprintf(&b, "Assigned to : %s\n", valueOrDash(ticket.AssignedTo))
		fmt.Fprintf(&b, "Created at  : %s\n", valueOrDash(ticket.CreatedAt))
		fmt.Fprintf(&b, "Resolution  : %.1f h\n", ticket.ResolutionTimeHours)
		fmt.Fprintf(&b, "Description : %s\n", valueOrDash(ticket.Description))
		return renderPage("TICKET", strings.TrimRight(b.String(), "\n"), "c: copy description │ esc: back")

	case sectionDatasets:
		if m.idx >= len(m.datasets) {
			return renderPage("DATASET", "Record not found", "esc: back")
		}
		meta := m.datasets[m.idx]
		fmt.Fprintf(&b, "Dataset ID  : %s\n", meta.DatasetID)
		fmt.Fprintf(&b, "Name        : %s\n", valueOrDash(meta.Name))
		fmt.Fprintf(&b, "Rows        : %d\n", meta.Rows)
		fmt.Fprintf(&b, "Columns     : %d\n", meta.Columns)
		fmt.Fprintf(&b, "Uploaded by : %s\n", valueOrDash(meta.UploadedBy))
		fmt.Fprintf(&b, "Upload date : %s\n", valueOrDash(meta.UploadDate))
		return renderPage("DATASET", strings.TrimRight(b.String(), "\n"), "c: copy name │ esc: back")

	default:
		incident, ok := m.currentIncident()
		if !ok {
			return renderPage("INCIDENT", "Record not found", "esc: back")
		}
		fmt.Fprintf(&b, "Incident ID : %s\n", incident.IncidentID)
		fmt.Fprintf(&b, "Timestamp   : %s\n", valueOrDash(incident.Timestamp))
		fmt.Fprintf(&b, "Severity    : %s\n", valueOrDash(incident.Severity))
		fmt.Fprintf(&b, "Category    : %s\n", valueOrDash(incident.Category))
		fmt.Fprintf(&b, "Status      : %s\n", valueOrDash(incident.Status))
		fmt.Fprintf(&b, "Description : %s\n", valueOrDash(incident.Description))

		hotKeys := "c: copy description │ esc: back"
		if m.isAdmin() {
			hotKeys = "c: copy description │ e: edit │ esc: back"
		}
		return renderPage("INCIDENT", strings.TrimRight(b.String(), "\n"), hotKeys)
	}
}

func (m mainLoopModel) viewAdd() string {
	var b strings.Builder
	for i, input := range m.addInputs {
		fmt.Fprintf(&b, "%-12s: [ %s ]\n", incidentFieldLabels[i], input.View())
	}
	if m.addErr != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.addErr) + "\n")
	}
	if m.addSaving {
		b.WriteString("\nSaving...\n")
	}

	return renderPage("NEW INCIDENT", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m mainLoopModel) viewEdit() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s: %s\n", incidentFieldLabels[fieldIncidentID], m.editIncident.IncidentID)
	for i := fieldTimestamp; i < incidentFieldCount; i++ {
		fmt.Fprintf(&b, "%-12s: [ %s ]\n", incidentFieldLabels[i], m.editInputs[i].View())
	}
	b.WriteString("\n" + helpStyle.Render("Clear a field to keep its current value.") + "\n")
	if m.editSubmitting {
		b.WriteString("\nSaving...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	return renderPage("EDIT INCIDENT", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m mainLoopModel) viewConfirm() string {
	content := "Delete \"" + m.confirmIncident.IncidentID + "\"?\n\n"
	content += "y: yes    n: no"
	return overlayBoxStyle.Render(content)
}

func (m mainLoopModel) pageTitle() string {
	s := getSession()
	who := s.username
	if who == "" {
		who = m.username
	}
	return fmt.Sprintf("SECWATCH │ %s (%s)", who, m.roleLabel())
}

func (m mainLoopModel) roleLabel() string {
	if m.isAdmin() {
		return "admin"
	}
	return "user"
}

func (m mainLoopModel) listHotkeys() string {
	if m.section == sectionIncidents && m.isAdmin() {
		return "tab: section │ enter: open │ a: add │ e: edit │ ctrl+d: delete │ r: reload │ l: logout"
	}
	return "tab: section │ enter: open │ r: reload │ l: logout"
}
