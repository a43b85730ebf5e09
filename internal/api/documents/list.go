package documents

import (
	"archive-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type listRow struct {
	ID          string
	Title       string
	Category    string
	Volume      string
	IssueNumber string
	Department  string
	StartYear   *int
	EndYear     *int
	ChildCount  int64
	IsCompiled  int
}

// List returns one paginated catalog page spanning standalone works and
// compiled volumes. Archived rows never appear in the items or the total.
func List(db *gorm.DB, f ListFilter) (*ListResult, error) {
	q, err := newListQuery(f)
	if err != nil {
		return nil, err
	}

	res := &ListResult{Items: []ListItem{}, Page: q.page, PageSize: q.size}
	if !q.includeSingle() && !q.includeCompiled() {
		return res, nil
	}

	union, args := q.unionSQL()

	var total int64
	if err := db.Raw("SELECT COUNT(*) FROM ("+union+") docs", args...).Scan(&total).Error; err != nil {
		return nil, err
	}
	res.TotalCount = total
	res.TotalPages = int((total + int64(q.size) - 1) / int64(q.size))
	if total == 0 {
		return res, nil
	}

	pageSQL := "SELECT * FROM (" + union + ") docs ORDER BY " +
		q.sortCol + " " + q.sortDir + " NULLS LAST, id ASC LIMIT ? OFFSET ?"
	pageArgs := append(args, q.size, (q.page-1)*q.size)

	var rows []listRow
	if err := db.Raw(pageSQL, pageArgs...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(rows))
	var workIDs []string
	for _, r := range rows {
		it := ListItem{
			ID:         r.ID,
			Category:   catalog.Canonical(r.Category),
			Volume:     r.Volume,
			ChildCount: r.ChildCount,
			IsCompiled: r.IsCompiled == 1,
		}
		if it.IsCompiled {
			v := catalog.Volume{
				Category:     r.Category,
				VolumeNumber: r.Volume,
				StartYear:    r.StartYear,
				EndYear:      r.EndYear,
				IssueNumber:  r.IssueNumber,
				Department:   r.Department,
			}
			it.Title = v.DisplayTitle()
			it.SecondaryField = catalog.SecondaryField(r.Category)
			it.SecondaryValue = v.SecondaryValue()
		} else {
			it.Title = r.Title
			if r.IssueNumber != "" {
				it.SecondaryField = catalog.SecondaryIssueNumber
				it.SecondaryValue = r.IssueNumber
			}
			workIDs = append(workIDs, r.ID)
		}
		items = append(items, it)
	}

	if len(workIDs) > 0 {
		if err := attachNames(db, items, workIDs); err != nil {
			return nil, err
		}
	}

	res.Items = items
	return res, nil
}

// attachNames hydrates authors and topics for the standalone works on the
// page. Two batched queries over the page's ids instead of per-item fan-out.
func attachNames(db *gorm.DB, items []ListItem, workIDs []string) error {
	byID := make(map[string]*ListItem, len(workIDs))
	for i := range items {
		if !items[i].IsCompiled {
			byID[items[i].ID] = &items[i]
		}
	}

	type nameRow struct {
		WorkID string
		Name   string
	}

	var authors []nameRow
	if err := db.Table("work_authors").
		Select("work_authors.work_id AS work_id, authors.full_name AS name").
		Joins("JOIN authors ON authors.id = work_authors.author_id").
		Where("work_authors.work_id IN ?", workIDs).
		Order("authors.full_name ASC").
		Scan(&authors).Error; err != nil {
		return err
	}
	for _, r := range authors {
		if it, ok := byID[r.WorkID]; ok {
			it.Authors = append(it.Authors, r.Name)
		}
	}

	var topics []nameRow
	if err := db.Table("work_topics").
		Select("work_topics.work_id AS work_id, topics.name AS name").
		Joins("JOIN topics ON topics.id = work_topics.topic_id").
		Where("work_topics.work_id IN ?", workIDs).
		Order("topics.name ASC").
		Scan(&topics).Error; err != nil {
		return err
	}
	for _, r := range topics {
		if it, ok := byID[r.WorkID]; ok {
			it.Topics = append(it.Topics, r.Name)
		}
	}

	return nil
}
