package models

import "time"

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

func (s JobStatus) IsValid() bool {
	return s == JobActive || s == JobClosed || s == JobDraft
}

const (
	DefaultJobType        = "full-time"
	DefaultEmploymentType = "tempo_integral"
)

type Job struct {
	ID             int64            `gorm:"primaryKey"`
	CompanyID      int64            `gorm:"not null;index"`
	Company        *User            `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Title          string           `gorm:"not null"`
	Description    string           `gorm:"not null"`
	Requirements   JSONList[string]
	Location       string           `gorm:"not null"`
	WorkLocation   string           `gorm:"not null"`
	Salary         string
	JobType        string           `gorm:"default:full-time"`
	EmploymentType string           `gorm:"default:tempo_integral"`
	Tags           JSONList[string]
	Status         JobStatus        `gorm:"default:active;index"`
	CreatedAt      time.Time
}

// JobListing is a job row annotated for the caller.
type JobListing struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Company        string           `json:"company,omitempty"`
	Location       string           `json:"location"`
	WorkLocation   string           `json:"workLocation"`
	Salary         string           `json:"salary"`
	Type           string           `json:"type"`
	EmploymentType string           `json:"employmentType,omitempty"`
	Status         JobStatus        `json:"status,omitempty"`
	Applicants     int64            `json:"applicants"`
	PostedAt       time.Time        `json:"postedAt"`
	Requirements   JSONList[string] `json:"requirements"`
	Tags           JSONList[string] `json:"tags"`
	IsFavorite     *bool            `json:"isFavorite,omitempty"`
	HasApplied     *bool            `json:"hasApplied,omitempty"`
	MatchScore     *int             `json:"matchScore,omitempty"`
}
