package documents

import "time"

// ---------- requests

type CreateWorkRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" binding:"required"`
	PublicationDate *string  `json:"publication_date"` // YYYY-MM-DD
	Volume          string   `json:"volume"`
	IssueNumber     string   `json:"issue_number"`
	IsPublic        *bool    `json:"is_public"`
	Authors         []string `json:"authors"`
	Topics          []string `json:"topics"`
}

type UpdateWorkRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	PublicationDate *string  `json:"publication_date"`
	Volume          *string  `json:"volume"`
	IssueNumber     *string  `json:"issue_number"`
	IsPublic        *bool    `json:"is_public"`
	Authors         []string `json:"authors"` // nil = leave untouched, [] = clear
	Topics          []string `json:"topics"`
}

// ---------- listing

// ListFilter carries the catalog listing parameters. Every field is consumed
// as a bound parameter by the query builder; nothing is interpolated into SQL.
type ListFilter struct {
	Page      int
	PageSize  int
	Category  string // "All", a single category, or comma-separated set
	Search    string
	Keyword   string
	SortField string
	SortOrder string
	DocTypes  string // all | compiled | single
}

// ListItem is the common shape both entity kinds normalize to.
type ListItem struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       string     `json:"category"`
	Volume         string     `json:"volume,omitempty"`
	SecondaryField string     `json:"secondary_field,omitempty"`
	SecondaryValue string     `json:"secondary_value,omitempty"`
	ChildCount     int64      `json:"child_count"`
	IsCompiled     bool       `json:"is_compiled"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	Authors        []string   `json:"authors,omitempty"`
	Topics         []string   `json:"topics,omitempty"`
}

type ListResult struct {
	Items      []ListItem `json:"items"`
	TotalCount int64      `json:"total_count"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}
