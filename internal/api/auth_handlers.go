package api

import (
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
)

type registerRequest struct {
	Name        string          `json:"name" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required"`
	UserType    models.UserType `json:"userType" validate:"required,oneof=candidate company"`
	CompanyName string          `json:"companyName"`
}

type loginRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	UserType models.UserType `json:"userType"`
}

type userResponse struct {
	Success bool              `json:"success"`
	User    models.PublicUser `json:"user"`
}

// handleRegister creates an account and signs it in
// @Summary Register
// @Description Create a candidate or company account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Account data"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Router /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	signedIn, err := s.services.Auth.Register(r.Context(), services.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Type:        req.UserType,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	log.Infof("registered %s user %d", signedIn.User.Type, signedIn.User.ID)
	s.setSessionCookie(w, signedIn.Token)
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: signedIn.User})
}

// handleLogin starts a session
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	signedIn, err := s.services.Auth.Login(r.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.setSessionCookie(w, signedIn.Token)
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: signedIn.User})
}

// handleLogout ends the session. It succeeds without one too.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} successResponse
// @Router /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Auth.Logout(r.Context(), s.sessionToken(r)); err != nil {
		log.Warnf("failed to delete session: %v", err)
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.PublicUser
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /auth/me [get]
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.services.Auth.CurrentUser(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
