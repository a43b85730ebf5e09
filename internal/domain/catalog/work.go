package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work is a standalone archived document (thesis, dissertation) or a child
// item inside a compiled volume.
type Work struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Category        string     `gorm:"type:text;not null;index" json:"category"`
	PublicationDate *time.Time `gorm:"index" json:"publication_date,omitempty"`

	Volume      string `gorm:"type:text" json:"volume,omitempty"`
	IssueNumber string `gorm:"type:text" json:"issue_number,omitempty"`

	// Denormalized parent link. The volume_items join table is ground truth;
	// this column is only ever written in the same transaction that mutates
	// the join table.
	CompiledParentID *string `gorm:"type:uuid;index" json:"compiled_parent_id,omitempty"`

	IsPublic bool `gorm:"not null;default:true" json:"is_public"`

	Authors []Author `gorm:"many2many:work_authors;" json:"authors,omitempty"`
	Topics  []Topic  `gorm:"many2many:work_topics;" json:"topics,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type Author struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string `gorm:"type:text;not null;uniqueIndex" json:"full_name"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Topic struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
