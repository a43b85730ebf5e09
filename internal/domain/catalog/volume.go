package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Volume is a compiled document: a container for a themed collection of
// works. It references its children through the volume_items join table.
type Volume struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Category     string `gorm:"type:text;not null;index" json:"category"`
	VolumeNumber string `gorm:"type:text" json:"volume_number,omitempty"`
	StartYear    *int   `json:"start_year,omitempty"`
	EndYear      *int   `json:"end_year,omitempty"`

	// Exactly one of these is semantically active, selected by
	// SecondaryField(Category). The inactive column stays empty.
	IssueNumber string `gorm:"type:text" json:"issue_number,omitempty"`
	Department  string `gorm:"type:text" json:"department,omitempty"`

	Foreword         string `gorm:"type:text" json:"foreword,omitempty"`
	AbstractForeword string `gorm:"type:text" json:"abstract_foreword,omitempty"`

	Items []VolumeItem `gorm:"foreignKey:VolumeID" json:"items,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (v *Volume) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// DisplayTitle synthesizes "<category> Vol. <n> (<start>-<end>)", omitting
// parts that are missing.
func (v *Volume) DisplayTitle() string {
	parts := []string{Canonical(v.Category)}
	if v.VolumeNumber != "" {
		parts = append(parts, "Vol. "+v.VolumeNumber)
	}
	switch {
	case v.StartYear != nil && v.EndYear != nil:
		parts = append(parts, fmt.Sprintf("(%d-%d)", *v.StartYear, *v.EndYear))
	case v.StartYear != nil:
		parts = append(parts, fmt.Sprintf("(%d)", *v.StartYear))
	case v.EndYear != nil:
		parts = append(parts, fmt.Sprintf("(%d)", *v.EndYear))
	}
	return strings.Join(parts, " ")
}

// SecondaryValue returns the value of the secondary identifier column that
// is active for this volume's category.
func (v *Volume) SecondaryValue() string {
	if SecondaryField(v.Category) == SecondaryDepartment {
		return v.Department
	}
	return v.IssueNumber
}

// VolumeItem links a volume to a child work. (volume_id, work_id) is unique.
type VolumeItem struct {
	VolumeID string `gorm:"type:uuid;primaryKey" json:"volume_id"`
	WorkID   string `gorm:"type:uuid;primaryKey" json:"work_id"`
}

func (VolumeItem) TableName() string { return "volume_items" }
