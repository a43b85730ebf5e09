package compiled

import (
	"archive-app/internal/domain/catalog"
)

// ---------- requests

type CreateCompiledRequest struct {
	Category         string `json:"category" binding:"required"`
	VolumeNumber     string `json:"volume_number"`
	StartYear        *int   `json:"start_year"`
	EndYear          *int   `json:"end_year"`
	IssueNumber      string `json:"issue_number"`
	Department       string `json:"department"`
	Foreword         string `json:"foreword"`
	AbstractForeword string `json:"abstract_foreword"`
}

type UpdateCompiledRequest struct {
	Category         *string `json:"category"`
	VolumeNumber     *string `json:"volume_number"`
	StartYear        *int    `json:"start_year"`
	EndYear          *int    `json:"end_year"`
	IssueNumber      *string `json:"issue_number"`
	Department       *string `json:"department"`
	Foreword         *string `json:"foreword"`
	AbstractForeword *string `json:"abstract_foreword"`
}

type AttachWorkRequest struct {
	WorkID string `json:"work_id" binding:"required"`
}

// ---------- responses

type CompiledDTO struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Category         string `json:"category"`
	VolumeNumber     string `json:"volume_number,omitempty"`
	StartYear        *int   `json:"start_year,omitempty"`
	EndYear          *int   `json:"end_year,omitempty"`
	SecondaryField   string `json:"secondary_field"`
	SecondaryValue   string `json:"secondary_value,omitempty"`
	Foreword         string `json:"foreword,omitempty"`
	AbstractForeword string `json:"abstract_foreword,omitempty"`
	ChildCount       int64  `json:"child_count"`
}

func toCompiledDTO(v catalog.Volume, childCount int64) CompiledDTO {
	return CompiledDTO{
		ID:               v.ID,
		Title:            v.DisplayTitle(),
		Category:         catalog.Canonical(v.Category),
		VolumeNumber:     v.VolumeNumber,
		StartYear:        v.StartYear,
		EndYear:          v.EndYear,
		SecondaryField:   catalog.SecondaryField(v.Category),
		SecondaryValue:   v.SecondaryValue(),
		Foreword:         v.Foreword,
		AbstractForeword: v.AbstractForeword,
		ChildCount:       childCount,
	}
}
