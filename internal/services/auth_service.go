package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/repositories"
	"github.com/maxaizer/selectflow/internal/sessions"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
	"sync"
)

type userRepository interface {
	CreateCandidate(ctx context.Context, user *models.User, profile *models.CandidateProfile) error
	CreateCompany(ctx context.Context, user *models.User, profile *models.CompanyProfile) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type AuthService struct {
	users    userRepository
	hasher   passwordHasher
	sessions sessions.Store

	// verified against for unknown emails so every failed login costs one hash
	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users userRepository, hasher passwordHasher, store sessions.Store) *AuthService {
	return &AuthService{users: users, hasher: hasher, sessions: store}
}

type Registration struct {
	Name        string
	Email       string
	Password    string
	Type        models.UserType
	CompanyName string
}

// SignedIn is the result of a successful register or login: the user and the token of its new session.
type SignedIn struct {
	User  models.PublicUser
	Token string
}

func (s *AuthService) Register(ctx context.Context, reg Registration) (*SignedIn, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)

	if reg.Name == "" || reg.Email == "" || reg.Password == "" || reg.Type == "" {
		return nil, newError(ValidationError, "Todos os campos são obrigatórios")
	}
	if !reg.Type.IsValid() {
		return nil, newError(ValidationError, "Tipo de usuário inválido")
	}

	exists, err := s.users.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errEmailTaken
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		Type:         reg.Type,
		Avatar:       models.InitialsAvatarURL(reg.Name),
	}

	if reg.Type == models.CompanyUser {
		companyName := strings.TrimSpace(reg.CompanyName)
		if companyName == "" {
			companyName = reg.Name
		}
		err = s.users.CreateCompany(ctx, user, &models.CompanyProfile{CompanyName: companyName})
	} else {
		err = s.users.CreateCandidate(ctx, user, models.NewCandidateProfile(0))
	}

	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, errEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return s.signIn(ctx, user)
}

// Login fails with the same AuthError whether the email, the password or the declared type is wrong.
func (s *AuthService) Login(ctx context.Context, email, password string, userType models.UserType) (*SignedIn, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, newError(ValidationError, "Email e senha são obrigatórios")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_, _ = s.hasher.Verify(password, s.dummy())
		return nil, errInvalidLogin
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to verify password of user %d", user.ID)
	}
	if !ok || user.Type != userType {
		return nil, errInvalidLogin
	}

	return s.signIn(ctx, user)
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("selectflow-dummy-password")
		if err != nil {
			log.Warnf("failed to create dummy password hash: %v", err)
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) signIn(ctx context.Context, user *models.User) (*SignedIn, error) {
	token, err := s.sessions.Create(ctx, sessions.Session{UserID: user.ID, UserType: user.Type})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}
	return &SignedIn{User: user.Public(), Token: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token into the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, errNotAuthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, sessions.ErrNotFound) {
		return auth.Identity{}, errNotAuthenticated
	}
	if err != nil {
		return auth.Identity{}, errors.Wrap(err, "failed to read session")
	}

	return auth.Identity{UserID: session.UserID, Type: session.UserType}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, identity auth.Identity) (*models.PublicUser, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newError(NotFoundError, "Usuário não encontrado")
	}

	public := user.Public()
	return &public, nil
}
