package models

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

type Stage string

const (
	StageResumeAnalysis Stage = "resume_analysis"
	StageTechnicalTest  Stage = "technical_test"
	StageGroupDynamics  Stage = "group_dynamics"
	StageInterview      Stage = "interview"
	StageReferenceCheck Stage = "reference_check"
	StageFinalInterview Stage = "final_interview"
	StageHired          Stage = "hired"
)

// Pipeline lists the selection stages in the order an application moves through them.
var Pipeline = []Stage{
	StageResumeAnalysis,
	StageTechnicalTest,
	StageGroupDynamics,
	StageInterview,
	StageReferenceCheck,
	StageFinalInterview,
	StageHired,
}

func (s Stage) Index() int {
	for i, stage := range Pipeline {
		if stage == s {
			return i
		}
	}
	return -1
}

func (s Stage) IsValid() bool {
	return s.Index() >= 0
}

func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("unknown stage %q", s)
	}
	return stage, nil
}

type Application struct {
	ID           int64             `gorm:"primaryKey"`
	CandidateID  int64             `gorm:"not null;uniqueIndex:idx_applications_candidate_job"`
	Candidate    *User             `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	JobID        int64             `gorm:"not null;uniqueIndex:idx_applications_candidate_job;index"`
	Job          *Job              `gorm:"constraint:OnDelete:CASCADE"`
	Status       ApplicationStatus `gorm:"default:pending"`
	CurrentStage Stage             `gorm:"default:resume_analysis"`
	JobSource    string            `gorm:"default:selectflow"`
	SubmittedAt  time.Time         `gorm:"autoCreateTime"`
}

const DefaultJobSource = "selectflow"

func (a *Application) IsTerminal() bool {
	return a.CurrentStage == StageHired || a.Status == StatusRejected
}

// CanMoveTo reports whether the application may go from its current stage to the target one.
// Stages only move forward; skipping is allowed.
func (a *Application) CanMoveTo(target Stage) error {
	if a.IsTerminal() {
		return fmt.Errorf("application is already %s", a.terminalState())
	}
	if !target.IsValid() {
		return fmt.Errorf("unknown stage %q", target)
	}
	if target.Index() <= a.CurrentStage.Index() {
		return fmt.Errorf("cannot move from %s to %s", a.CurrentStage, target)
	}
	return nil
}

func (a *Application) terminalState() string {
	if a.Status == StatusRejected {
		return string(StatusRejected)
	}
	return string(StageHired)
}

// StatusForStage is the application status an application gets when it enters the stage.
func StatusForStage(stage Stage) ApplicationStatus {
	switch stage {
	case StageResumeAnalysis:
		return StatusPending
	case StageHired:
		return StatusApproved
	default:
		return StatusUnderReview
	}
}

type StageOutcome string

const (
	OutcomePending StageOutcome = "pending"
	OutcomePassed  StageOutcome = "passed"
	OutcomeFailed  StageOutcome = "failed"
)

type StageHistory struct {
	ID            int64        `gorm:"primaryKey" json:"id"`
	ApplicationID int64        `gorm:"not null;index" json:"applicationId"`
	Application   *Application `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Stage         Stage        `gorm:"not null" json:"stage"`
	Status        StageOutcome `gorm:"default:pending" json:"status"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func (StageHistory) TableName() string {
	return "stage_history"
}

// CandidateApplication is an application as its candidate sees it.
type CandidateApplication struct {
	ID           int64             `json:"id"`
	JobID        int64             `json:"jobId"`
	JobTitle     string            `json:"jobTitle"`
	Company      string            `json:"company"`
	Location     string            `json:"location"`
	WorkLocation string            `json:"workLocation"`
	Salary       string            `json:"salary"`
	Status       ApplicationStatus `json:"status"`
	CurrentStage Stage             `json:"currentStage"`
	JobSource    string            `json:"jobSource"`
	AppliedAt    time.Time         `json:"appliedAt"`
}
