package events

import (
	"github.com/maxaizer/selectflow/internal/domain/models"
)

var (
	JobCreatedTopic           = "JobCreatedEvent"
	ApplicationSubmittedTopic = "ApplicationSubmittedEvent"
	StageChangedTopic         = "StageChangedEvent"
)

type JobCreated struct {
	JobID     int64
	CompanyID int64
}

type ApplicationSubmitted struct {
	ApplicationID int64
	JobID         int64
	CandidateID   int64
}

type StageChanged struct {
	ApplicationID int64
	From          models.Stage
	To            models.Stage
	Status        models.ApplicationStatus
}
