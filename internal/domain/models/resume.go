package models

import "time"

type Resume struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	CandidateID int64     `gorm:"not null;index" json:"candidateId"`
	Candidate   *User     `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"-"`
	Content     string    `gorm:"not null" json:"content"`
	FileName    string    `json:"fileName"`
	FilePath    string    `json:"filePath"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}
