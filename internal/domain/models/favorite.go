package models

import "time"

type Favorite struct {
	ID          int64 `gorm:"primaryKey"`
	CandidateID int64 `gorm:"not null;uniqueIndex:idx_favorites_candidate_job"`
	Candidate   *User `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	JobID       int64 `gorm:"not null;uniqueIndex:idx_favorites_candidate_job"`
	Job         *Job  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}
