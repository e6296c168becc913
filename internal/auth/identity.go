package auth

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
)

// Identity is the authenticated caller resolved from the session.
type Identity struct {
	UserID int64
	Type   models.UserType
}

func (i Identity) IsCompany() bool {
	return i.Type == models.CompanyUser
}

func (i Identity) IsCandidate() bool {
	return i.Type == models.CandidateUser
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
