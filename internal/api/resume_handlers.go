package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

type resumeTextRequest struct {
	Content  string `json:"content" validate:"required"`
	FileName string `json:"fileName"`
}

// @Summary List résumés
// @Tags resumes
// @Produce json
// @Success 200 {array} models.Resume
// @Failure 403 {object} errorResponse
// @Router /resumes [get]
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.services.Resumes.List(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(resumes))
}

// handleUploadResume accepts either a multipart "file" (PDF, DOCX or text) or a JSON body with the text itself.
// @Summary Upload résumé
// @Tags resumes
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file false "Résumé file (PDF, DOCX or TXT)"
// @Success 201 {object} models.Resume
// @Failure 400 {object} errorResponse
// @Router /resumes [post]
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req resumeTextRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		resume, err := s.services.Resumes.SaveText(r.Context(), identity(r), req.Content, req.FileName)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, resume)
		return
	}

	fileName, data, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := s.services.Resumes.Upload(r.Context(), identity(r), fileName, data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resume)
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := s.options.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, tooLargeError(limit)
		}
		return "", nil, &badRequest{message: "Formulário inválido"}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &badRequest{message: "Arquivo é obrigatório"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return "", nil, &badRequest{message: "Falha ao ler o arquivo"}
	}
	if int64(len(data)) > limit {
		return "", nil, tooLargeError(limit)
	}
	return header.Filename, data, nil
}

func tooLargeError(limit int64) error {
	return &badRequest{message: fmt.Sprintf("Arquivo excede o tamanho máximo de %d bytes", limit)}
}
