package api

import (
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/logger"
	"github.com/maxaizer/selectflow/internal/metrics"
	log "github.com/sirupsen/logrus"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument must wrap the mux directly: the route pattern is only known after the mux has served the request.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestsCounter.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		entry := log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": duration,
		})
		if recorder.status >= http.StatusBadRequest {
			entry.Info("request handled")
		} else {
			entry.Debug("request handled")
		}
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
					Errorf("panic while handling %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireSession resolves the session cookie into an auth.Identity stored in the request context.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.services.Auth.Authenticate(r.Context(), s.sessionToken(r))
		if err != nil {
			s.writeError(w, err)
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	}
}

func (s *Server) requireRole(userType models.UserType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return s.requireSession(func(w http.ResponseWriter, r *http.Request) {
			if identity(r).Type != userType {
				writeJSON(w, http.StatusForbidden, errorResponse{Error: "Acesso negado"})
				return
			}
			next(w, r)
		})
	}
}

func identity(r *http.Request) auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}

func (s *Server) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(s.options.Session.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.options.Session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.options.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.options.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.options.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
