// Package tui is a read-only terminal console for operators: it lists
// accounts with their live credit position via the admin REST API. It
// never writes quota state; the engine stays the sole writer.
package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// creates the quota console
func NewConsole() *Model {
	columns := []table.Column{
		{Title: "Email", Width: 30},
		{Title: "Tier", Width: 8},
		{Title: "Status", Width: 9},
		{Title: "Bucket", Width: 9},
		{Title: "Remaining", Width: 10},
		{Title: "Allowance", Width: 10},
		{Title: "Next reset", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = headerStyle
	t.SetStyles(styles)

	return &Model{
		client: NewAdminClient(),
		table:  t,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.client.FetchAccounts()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.client.FetchAccounts()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if msg.Height > 8 {
			m.table.SetHeight(msg.Height - 8)
		}

	case accountsMsg:
		m.err = nil
		m.fetchedAt = time.Now()
		m.table.SetRows(toRows(msg.accounts))

	case errorMsg:
		m.err = msg.err
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *Model) View() string {
	view := titleStyle.Render("svgforge quota console")
	view += "\n" + m.table.View()

	if m.err != nil {
		view += "\n" + errorStyle.Render(fmt.Sprintf("error: %v", m.err))
	} else if !m.fetchedAt.IsZero() {
		view += "\n" + statusStyle.Render(fmt.Sprintf("fetched %s  [r] refresh  [q] quit", m.fetchedAt.Format("15:04:05")))
	} else {
		view += "\n" + statusStyle.Render("loading...")
	}

	return view
}

func toRows(accounts []accountRow) []table.Row {
	rows := make([]table.Row, 0, len(accounts))

	for _, a := range accounts {
		nextReset := "-"
		if a.NextResetAt != nil {
			nextReset = a.NextResetAt.Format("2006-01-02")
		}

		rows = append(rows, table.Row{
			a.Email,
			a.Tier,
			a.Status,
			a.Bucket,
			strconv.Itoa(a.RemainingCredits),
			strconv.Itoa(a.Allowance),
			nextReset,
		})
	}

	return rows
}
