package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
)

type candidateRoster interface {
	ListCandidatesForCompany(ctx context.Context, companyID int64) ([]models.CandidateSummary, error)
	IsApplicant(ctx context.Context, companyID, candidateID int64) (bool, error)
}

type candidateDetailsSource interface {
	CandidateDetails(ctx context.Context, candidateID int64) (*models.CandidateDetails, error)
}

type CandidateService struct {
	roster  candidateRoster
	details candidateDetailsSource
	// restrictDetails hides candidates who never applied to the company's jobs.
	restrictDetails bool
}

func NewCandidateService(roster candidateRoster, details candidateDetailsSource, restrictDetails bool) *CandidateService {
	return &CandidateService{roster: roster, details: details, restrictDetails: restrictDetails}
}

func (s *CandidateService) List(ctx context.Context, identity auth.Identity) ([]models.CandidateSummary, error) {
	if !identity.IsCompany() {
		return nil, errAccessDenied
	}
	return s.roster.ListCandidatesForCompany(ctx, identity.UserID)
}

func (s *CandidateService) Details(ctx context.Context, identity auth.Identity, candidateID int64) (*models.CandidateDetails, error) {
	if !identity.IsCompany() {
		return nil, errAccessDenied
	}

	notFound := newError(NotFoundError, "Candidato não encontrado")

	if s.restrictDetails {
		applied, err := s.roster.IsApplicant(ctx, identity.UserID, candidateID)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, notFound
		}
	}

	details, err := s.details.CandidateDetails(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, notFound
	}
	return details, nil
}
