package models

import "encoding/json"

type ProfessionalInterest string

const (
	InterestHire    ProfessionalInterest = "contratar"
	InterestProvide ProfessionalInterest = "prestar_servicos"
	InterestFindJob ProfessionalInterest = "encontrar_emprego"
)

const DefaultInterest = InterestFindJob

const (
	DefaultCompanyName  = "Empresa"
	DefaultProfileTitle = "Profissional"
	DefaultBio          = "Sem descrição disponível"
	DefaultLocation     = "Não informado"
)

func (i ProfessionalInterest) IsValid() bool {
	switch i {
	case InterestHire, InterestProvide, InterestFindJob:
		return true
	default:
		return false
	}
}

// Entries holds experience or education items exactly as the client sent them.
// Unknown keys and empty values survive storage.
type Entries = JSONList[json.RawMessage]

// ExperienceEntry is the subset of an experience item the platform reads.
type ExperienceEntry struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	EmploymentType string   `json:"employment_type,omitempty"`
	Location       string   `json:"location,omitempty"`
	LocationType   string   `json:"location_type,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        *string  `json:"end_date,omitempty"`
	Current        bool     `json:"current,omitempty"`
	Description    string   `json:"description,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

// EntriesOf encodes typed items into their stored form.
func EntriesOf[T any](items ...T) (Entries, error) {
	entries := make(Entries, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, data)
	}
	return entries, nil
}

// DecodeEntries reads entries as T, skipping items that are not objects of that shape.
func DecodeEntries[T any](entries Entries) []T {
	items := make([]T, 0, len(entries))
	for _, raw := range entries {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

type CandidateProfile struct {
	ID                   int64                `gorm:"primaryKey"`
	UserID               int64                `gorm:"uniqueIndex;not null"`
	User                 *User                `gorm:"constraint:OnDelete:CASCADE"`
	Phone                string
	Location             string
	ProfileTitle         string
	Bio                  string
	ProfessionalInterest ProfessionalInterest `gorm:"default:encontrar_emprego"`
	Skills               JSONList[string]
	Experience           Entries
	Education            Entries
	Languages            JSONList[string]
	LinkedIn             string               `gorm:"column:linkedin"`
	GitHub               string               `gorm:"column:github"`
	Portfolio            string
}

func NewCandidateProfile(userID int64) *CandidateProfile {
	return &CandidateProfile{
		UserID:               userID,
		ProfessionalInterest: DefaultInterest,
		Skills:               JSONList[string]{},
		Experience:           Entries{},
		Education:            Entries{},
		Languages:            JSONList[string]{},
	}
}

type CompanyProfile struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64 `gorm:"uniqueIndex;not null"`
	User        *User `gorm:"constraint:OnDelete:CASCADE"`
	CompanyName string
	Description string
	Industry    string
	Size        string
	Website     string
	Location    string
	LinkedIn    string `gorm:"column:linkedin"`
}
