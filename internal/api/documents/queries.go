package documents

import (
	"strings"

	"archive-app/internal/domain/catalog"

	"gorm.io/gorm"
)

const (
	DocTypesAll      = "all"
	DocTypesCompiled = "compiled"
	DocTypesSingle   = "single"
)

const maxPageSize = 50

// Sort keys accepted from callers, mapped to union columns. Anything else
// silently falls back to id ASC.
var sortColumns = map[string]string{
	"id":               "id",
	"title":            "title",
	"publicationDate":  "publication_date",
	"publication_date": "publication_date",
	"category":         "category",
	"createdAt":        "created_at",
	"created_at":       "created_at",
}

// listQuery is the validated, typed form of a ListFilter. It emits the
// two-branch union as parameterized SQL; user input only ever travels in the
// args slice.
type listQuery struct {
	page       int
	size       int
	categories []string // canonical names; empty = all
	search     string
	keyword    string
	docTypes   string
	sortCol    string
	sortDir    string
}

func newListQuery(f ListFilter) (*listQuery, error) {
	q := &listQuery{page: f.Page, size: f.PageSize}

	if q.page < 1 {
		return nil, catalog.NewValidationError("page", "must be >= 1")
	}
	if q.size < 1 || q.size > maxPageSize {
		return nil, catalog.NewValidationError("size", "must be between 1 and 50")
	}

	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "All") {
		seen := map[string]bool{}
		for _, part := range strings.Split(c, ",") {
			if !catalog.KnownCategory(part) {
				return nil, catalog.NewValidationError("category", "unknown category "+strings.TrimSpace(part))
			}
			name := catalog.Canonical(part)
			if !seen[name] {
				seen[name] = true
				q.categories = append(q.categories, name)
			}
		}
	}

	q.docTypes = strings.ToLower(strings.TrimSpace(f.DocTypes))
	if q.docTypes == "" {
		q.docTypes = DocTypesAll
	}
	switch q.docTypes {
	case DocTypesAll, DocTypesCompiled, DocTypesSingle:
	default:
		return nil, catalog.NewValidationError("docTypes", "must be all, compiled or single")
	}

	q.search = strings.TrimSpace(f.Search)
	q.keyword = strings.TrimSpace(f.Keyword)

	if col, ok := sortColumns[f.SortField]; ok && f.SortField != "" {
		q.sortCol = col
		q.sortDir = "ASC"
		if strings.EqualFold(f.SortOrder, "DESC") {
			q.sortDir = "DESC"
		}
	} else {
		q.sortCol = "id"
		q.sortDir = "ASC"
	}

	return q, nil
}

func (q *listQuery) includeSingle() bool { return q.docTypes != DocTypesCompiled }

// Keyword matches topics and topics attach to works only, so a keyword
// filter drops the compiled branch entirely.
func (q *listQuery) includeCompiled() bool {
	return q.docTypes != DocTypesSingle && q.keyword == ""
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func (q *listQuery) workBranch() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT w.id AS id, w.title AS title, UPPER(w.category) AS category,
 w.volume AS volume, w.issue_number AS issue_number, '' AS department,
 NULL AS start_year, NULL AS end_year, 0 AS child_count, 0 AS is_compiled,
 w.publication_date AS publication_date, w.created_at AS created_at
 FROM works w WHERE w.deleted_at IS NULL`)

	if len(q.categories) > 0 {
		sb.WriteString(" AND UPPER(w.category) IN ?")
		args = append(args, q.categories)
	}
	if q.search != "" {
		sb.WriteString(` AND (LOWER(w.title) LIKE ? OR LOWER(w.description) LIKE ?
 OR EXISTS (SELECT 1 FROM work_authors wa JOIN authors a ON a.id = wa.author_id
 WHERE wa.work_id = w.id AND LOWER(a.full_name) LIKE ?))`)
		p := likePattern(q.search)
		args = append(args, p, p, p)
	}
	if q.keyword != "" {
		sb.WriteString(` AND EXISTS (SELECT 1 FROM work_topics wt JOIN topics tp ON tp.id = wt.topic_id
 WHERE wt.work_id = w.id AND LOWER(tp.name) LIKE ?)`)
		args = append(args, likePattern(q.keyword))
	}

	return sb.String(), args
}

func (q *listQuery) volumeBranch() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	// The SQL title only needs to order consistently; the display title is
	// resynthesized in Go with the year range attached.
	sb.WriteString(`SELECT v.id AS id,
 UPPER(v.category) || CASE WHEN COALESCE(v.volume_number, '') <> '' THEN ' Vol. ' || v.volume_number ELSE '' END AS title,
 UPPER(v.category) AS category, v.volume_number AS volume,
 v.issue_number AS issue_number, v.department AS department,
 v.start_year AS start_year, v.end_year AS end_year,
 (SELECT COUNT(*) FROM volume_items vi WHERE vi.volume_id = v.id) AS child_count,
 1 AS is_compiled, NULL AS publication_date, v.created_at AS created_at
 FROM volumes v WHERE v.deleted_at IS NULL`)

	if len(q.categories) > 0 {
		sb.WriteString(" AND UPPER(v.category) IN ?")
		args = append(args, q.categories)
		// A targeted category query must not be satisfied by an empty shell.
		sb.WriteString(" AND (SELECT COUNT(*) FROM volume_items vi WHERE vi.volume_id = v.id) > 0")
	}
	if q.search != "" {
		sb.WriteString(` AND (LOWER(v.category) LIKE ? OR LOWER(COALESCE(v.volume_number, '')) LIKE ?
 OR LOWER(COALESCE(v.abstract_foreword, '')) LIKE ?)`)
		p := likePattern(q.search)
		args = append(args, p, p, p)
	}

	return sb.String(), args
}

func (q *listQuery) unionSQL() (string, []interface{}) {
	var branches []string
	var args []interface{}

	if q.includeSingle() {
		sql, a := q.workBranch()
		branches = append(branches, sql)
		args = append(args, a...)
	}
	if q.includeCompiled() {
		sql, a := q.volumeBranch()
		branches = append(branches, sql)
		args = append(args, a...)
	}

	return strings.Join(branches, " UNION ALL "), args
}

// ---------- author/topic upserts shared by the work write handlers

func upsertAuthors(tx *gorm.DB, names []string) ([]catalog.Author, error) {
	out := make([]catalog.Author, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var a catalog.Author
		if err := tx.Where(catalog.Author{FullName: name}).FirstOrCreate(&a).Error; err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func upsertTopics(tx *gorm.DB, names []string) ([]catalog.Topic, error) {
	out := make([]catalog.Topic, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var t catalog.Topic
		if err := tx.Where(catalog.Topic{Name: name}).FirstOrCreate(&t).Error; err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
