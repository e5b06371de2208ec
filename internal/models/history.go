package models

// HistoryEntry is one processed media item.
type HistoryEntry struct {
	ID               int64  `json:"id"`
	DateTime         int64  `json:"date_time"`
	DateTimeReadable string `json:"date_time_readable"`
	AppType          string `json:"app_type"`
	InstanceName     string `json:"instance_name"`
	ProcessedInfo    string `json:"processed_info"`
	OperationType    string `json:"operation_type"`
	HowLongAgo       string `json:"how_long_ago"`
}

// HistoryQuery selects a page of history.
type HistoryQuery struct {
	App      Source
	Page     int
	PageSize int
	Search   string
}

// HistoryPage is the history endpoint response.
type HistoryPage struct {
	Entries    []HistoryEntry `json:"entries"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// HistoryPageSizes are the page sizes the server accepts.
var HistoryPageSizes = []int{10, 20, 30, 50, 100, 250, 1000}

// DefaultHistoryPageSize is used when a requested page size is not allowed.
const DefaultHistoryPageSize = 20

// ClampHistoryPageSize returns size when the server accepts it, otherwise
// the default.
func ClampHistoryPageSize(size int) int {
	for _, s := range HistoryPageSizes {
		if s == size {
			return size
		}
	}
	return DefaultHistoryPageSize
}
