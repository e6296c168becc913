package models

import "time"

// CandidateSummary is one row of a company's applicant roster.
type CandidateSummary struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Avatar        string           `json:"avatar"`
	ProfileTitle  string           `json:"profileTitle"`
	Bio           string           `json:"bio"`
	Position      string           `json:"position"`
	Location      string           `json:"location"`
	Phone         string           `json:"phone"`
	Skills        JSONList[string] `json:"skills"`
	Experience    Entries          `json:"experience"`
	Status        Stage            `json:"status"`
	AppliedAt     time.Time        `json:"appliedAt"`
	ResumeContent *string          `json:"resumeContent"`
	ResumeFile    *string          `json:"resumeFile"`
}

type CandidateDetails struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Email                string               `json:"email"`
	Avatar               string               `json:"avatar"`
	ProfileTitle         string               `json:"profileTitle"`
	Bio                  string               `json:"bio"`
	Phone                string               `json:"phone"`
	Location             string               `json:"location"`
	ProfessionalInterest ProfessionalInterest `json:"professionalInterest"`
	Skills               JSONList[string]     `json:"skills"`
	Experience           Entries              `json:"experience"`
	Education            Entries              `json:"education"`
	Languages            JSONList[string]     `json:"languages"`
	LinkedIn             string               `json:"linkedin"`
	GitHub               string               `json:"github"`
	Portfolio            string               `json:"portfolio"`
	ResumeContent        *string              `json:"resumeContent"`
	ResumeFile           *string              `json:"resumeFile"`
	ResumePath           *string              `json:"resumePath"`
}
