package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharder01/Huntarr.io/internal/models"
)

func TestHistoryView_Paging(t *testing.T) {
	h := NewHistoryView(42)
	h.SetSize(100, 20)
	assert.Equal(t, models.DefaultHistoryPageSize, h.Query().PageSize)

	assert.False(t, h.NextPage(), "no page loaded yet")
	assert.False(t, h.PrevPage())

	require.True(t, h.SetPage(h.Query(), &models.HistoryPage{
		Entries:    []models.HistoryEntry{{AppType: "sonarr", ProcessedInfo: "Show S01E01", OperationType: "missing"}},
		TotalPages: 2,
	}))

	assert.True(t, h.NextPage())
	assert.Equal(t, 2, h.Query().Page)
	assert.False(t, h.NextPage())
	assert.True(t, h.PrevPage())
	assert.Equal(t, 1, h.Query().Page)
}

func TestHistoryView_IgnoresStalePages(t *testing.T) {
	h := NewHistoryView(20)
	old := h.Query()
	h.SetApp(models.SourceRadarr)

	assert.False(t, h.SetPage(old, &models.HistoryPage{TotalPages: 1}))
	assert.Contains(t, h.View(), "Loading history")
}

func TestHistoryView_PageSizeCycle(t *testing.T) {
	h := NewHistoryView(250)
	h.query.Page = 3

	h.CyclePageSize()
	assert.Equal(t, 1000, h.Query().PageSize)
	assert.Equal(t, 1, h.Query().Page)

	h.CyclePageSize()
	assert.Equal(t, models.HistoryPageSizes[0], h.Query().PageSize)
}

func TestHistoryView_Search(t *testing.T) {
	h := NewHistoryView(20)
	h.query.Page = 4

	h.StartSearch()
	assert.True(t, h.Searching())
	h.SearchInput().SetValue("  matrix ")
	h.FinishSearch()

	assert.False(t, h.Searching())
	assert.Equal(t, "matrix", h.Query().Search)
	assert.Equal(t, 1, h.Query().Page)

	h.StartSearch()
	h.SearchInput().SetValue("other")
	h.CancelSearch()
	assert.Equal(t, "matrix", h.Query().Search)
}

func TestHistoryView_RendersRows(t *testing.T) {
	h := NewHistoryView(20)
	h.SetSize(120, 20)
	h.SetPage(h.Query(), &models.HistoryPage{
		Entries: []models.HistoryEntry{
			{AppType: "radarr", InstanceName: "Main", ProcessedInfo: "The Matrix", OperationType: "upgrade", HowLongAgo: "2 hours ago"},
		},
		Total:      1,
		TotalPages: 1,
	})

	out := h.View()
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "Radarr")
	assert.Contains(t, out, "Page 1 of 1")
}
