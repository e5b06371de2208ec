package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jharder01/Huntarr.io/internal/models"
)

// HistoryView is the paged table of processed media.
type HistoryView struct {
	table     table.Model
	search    textinput.Model
	searching bool
	query     models.HistoryQuery
	page      *models.HistoryPage
	loading   bool
	width     int
	height    int
}

// NewHistoryView creates the view for all apps with the given page size.
func NewHistoryView(pageSize int) *HistoryView {
	ti := textinput.New()
	ti.Placeholder = "search titles"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorDim).
		BorderBottom(true).
		Bold(true)
	styles.Selected = selectedItemStyle.Foreground(colorWhite)

	t := table.New(table.WithColumns(historyColumns(80)), table.WithFocused(true))
	t.SetStyles(styles)

	return &HistoryView{
		table:  t,
		search: ti,
		query: models.HistoryQuery{
			App:      models.SourceAll,
			Page:     1,
			PageSize: models.ClampHistoryPageSize(pageSize),
		},
	}
}

// SetSize updates dimensions.
func (h *HistoryView) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.search.Width = width - 4

	// title, rule, search line and pager
	th := height - 4
	if th < 3 {
		th = 3
	}
	h.table.SetHeight(th)
	h.table.SetWidth(width)
	h.table.SetColumns(historyColumns(width))
}

func historyColumns(width int) []table.Column {
	const (
		when      = 14
		app       = 9
		instance  = 14
		operation = 10
	)
	item := width - when - app - instance - operation - 10
	if item < 10 {
		item = 10
	}
	return []table.Column{
		{Title: "When", Width: when},
		{Title: "App", Width: app},
		{Title: "Instance", Width: instance},
		{Title: "Item", Width: item},
		{Title: "Operation", Width: operation},
	}
}

// Query returns the query the view is showing, or about to show.
func (h *HistoryView) Query() models.HistoryQuery {
	return h.query
}

// SetApp switches the app filter and returns to the first page.
func (h *HistoryView) SetApp(app models.Source) {
	h.query.App = app
	h.query.Page = 1
	h.loading = true
}

// Loading marks a request for the current query in flight.
func (h *HistoryView) Loading() {
	h.loading = true
}

// SetPage installs a loaded page. Responses for a query other than the
// current one are ignored and false is returned.
func (h *HistoryView) SetPage(q models.HistoryQuery, page *models.HistoryPage) bool {
	if q != h.query {
		return false
	}
	h.loading = false
	h.page = page

	rows := make([]table.Row, 0, len(page.Entries))
	for _, e := range page.Entries {
		when := e.HowLongAgo
		if when == "" {
			when = e.DateTimeReadable
		}
		rows = append(rows, table.Row{
			when,
			models.Source(e.AppType).Label(),
			e.InstanceName,
			e.ProcessedInfo,
			e.OperationType,
		})
	}
	h.table.SetRows(rows)
	h.table.GotoTop()
	return true
}

// NextPage advances when a later page exists.
func (h *HistoryView) NextPage() bool {
	if h.page == nil || h.query.Page >= h.page.TotalPages {
		return false
	}
	h.query.Page++
	h.loading = true
	return true
}

// PrevPage goes back when not on the first page.
func (h *HistoryView) PrevPage() bool {
	if h.query.Page <= 1 {
		return false
	}
	h.query.Page--
	h.loading = true
	return true
}

// CyclePageSize moves to the next allowed page size and back to page 1.
func (h *HistoryView) CyclePageSize() {
	sizes := models.HistoryPageSizes
	next := sizes[0]
	for i, s := range sizes {
		if s == h.query.PageSize && i+1 < len(sizes) {
			next = sizes[i+1]
		}
	}
	h.query.PageSize = next
	h.query.Page = 1
	h.loading = true
}

// StartSearch focuses the search box.
func (h *HistoryView) StartSearch() {
	h.searching = true
	h.search.SetValue(h.query.Search)
	h.search.CursorEnd()
	h.search.Focus()
}

// FinishSearch applies the search box and returns to page 1.
func (h *HistoryView) FinishSearch() {
	h.searching = false
	h.search.Blur()
	h.query.Search = strings.TrimSpace(h.search.Value())
	h.query.Page = 1
	h.loading = true
}

// CancelSearch closes the search box without changing the query.
func (h *HistoryView) CancelSearch() {
	h.searching = false
	h.search.Blur()
}

// Searching reports whether the search box has focus.
func (h *HistoryView) Searching() bool {
	return h.searching
}

// SearchInput returns the search box for Update forwarding.
func (h *HistoryView) SearchInput() *textinput.Model {
	return &h.search
}

// MoveUp moves the row cursor up.
func (h *HistoryView) MoveUp() {
	h.table.MoveUp(1)
}

// MoveDown moves the row cursor down.
func (h *HistoryView) MoveDown() {
	h.table.MoveDown(1)
}

// View renders the view.
func (h *HistoryView) View() string {
	parts := []string{panelTitle("History · "+h.query.App.Label(), h.width)}

	switch {
	case h.searching:
		parts = append(parts, h.search.View())
	case h.query.Search != "":
		parts = append(parts, dimStyle.Render("search: ")+h.query.Search)
	default:
		parts = append(parts, dimStyle.Render("Press / to search"))
	}

	switch {
	case h.page == nil:
		parts = append(parts, dimStyle.Render("Loading history..."))
		return strings.Join(parts, "\n")
	case len(h.page.Entries) == 0:
		parts = append(parts, dimStyle.Render("No history found."))
	default:
		parts = append(parts, h.table.View())
	}

	pager := fmt.Sprintf("Page %d of %d · %d per page", h.query.Page, max(h.page.TotalPages, 1), h.query.PageSize)
	if h.page.Total > 0 {
		pager += fmt.Sprintf(" · %d items", h.page.Total)
	}
	if h.loading {
		pager += " · loading..."
	}
	parts = append(parts, dimStyle.Render(pager))
	return strings.Join(parts, "\n")
}
