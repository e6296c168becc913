package services

import (
	"bytes"
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/documents"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/logger"
	"github.com/maxaizer/selectflow/internal/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"path/filepath"
	"strings"
)

type resumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.Resume, error)
}

type ResumeService struct {
	resumes resumeRepository
	files   storage.FileStorage
}

func NewResumeService(resumes resumeRepository, files storage.FileStorage) *ResumeService {
	return &ResumeService{resumes: resumes, files: files}
}

// Upload extracts the text of a résumé file, stores the original and records both.
func (s *ResumeService) Upload(ctx context.Context, identity auth.Identity, fileName string, data []byte) (*models.Resume, error) {
	if !identity.IsCandidate() {
		return nil, errAccessDenied
	}

	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." {
		return nil, newError(ValidationError, "Arquivo é obrigatório")
	}

	text, err := documents.ExtractText(fileName, data)
	if errors.Is(err, documents.ErrUnsupported) {
		return nil, newError(ValidationError, "Formato de arquivo não suportado, envie PDF, DOCX ou TXT")
	}
	if err != nil {
		return nil, newError(ValidationError, "Não foi possível ler o arquivo: %v", err)
	}
	if isBlank(text) {
		return nil, newError(ValidationError, "O currículo não contém texto")
	}

	key := storage.ResumeKey(identity.UserID, fileName)
	path, err := s.files.Save(ctx, key, bytes.NewReader(data), int64(len(data)), documents.ContentType(fileName))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to store resume %s: %v", key, err)
		return nil, err
	}

	resume := &models.Resume{
		CandidateID: identity.UserID,
		Content:     text,
		FileName:    fileName,
		FilePath:    path,
	}
	if err = s.resumes.Create(ctx, resume); err != nil {
		if delErr := s.files.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to remove orphaned resume %s: %v", key, delErr)
		}
		return nil, err
	}
	return resume, nil
}

// SaveText records a résumé typed directly by the candidate, without a file.
func (s *ResumeService) SaveText(ctx context.Context, identity auth.Identity, content, fileName string) (*models.Resume, error) {
	if !identity.IsCandidate() {
		return nil, errAccessDenied
	}
	if isBlank(content) {
		return nil, newError(ValidationError, "O currículo não contém texto")
	}

	resume := &models.Resume{
		CandidateID: identity.UserID,
		Content:     strings.TrimSpace(content),
		FileName:    strings.TrimSpace(fileName),
	}
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) List(ctx context.Context, identity auth.Identity) ([]models.Resume, error) {
	if !identity.IsCandidate() {
		return nil, errAccessDenied
	}
	return s.resumes.ListByCandidate(ctx, identity.UserID)
}
