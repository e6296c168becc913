package services

import (
	"fmt"
	"github.com/pkg/errors"
)

type ErrorKind int

const (
	ValidationError ErrorKind = iota + 1
	AuthError
	AuthorizationError
	NotFoundError
	ConflictError
)

// Error is a failure the caller can act on. Anything else returned by a service is internal.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func AsError(err error) (*Error, bool) {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

var (
	errNotAuthenticated = &Error{Kind: AuthError, Message: "Não autenticado"}
	errAccessDenied     = &Error{Kind: AuthorizationError, Message: "Acesso negado"}
	errInvalidLogin     = &Error{Kind: AuthError, Message: "Credenciais inválidas"}
	errEmailTaken       = &Error{Kind: ConflictError, Message: "Já existe um cadastro com esse e-mail."}
	errJobNotFound      = &Error{Kind: NotFoundError, Message: "Vaga não encontrada"}
	errAppNotFound      = &Error{Kind: NotFoundError, Message: "Candidatura não encontrada"}
	errProfileNotFound  = &Error{Kind: NotFoundError, Message: "Perfil não encontrado"}
	errNoData           = &Error{Kind: ValidationError, Message: "Dados não fornecidos"}
)
