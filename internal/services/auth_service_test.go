package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.users, env.hasher, env.sessions)
}

func Test_Register_SameEmailTwice_Conflict(t *testing.T) {
	env := newTestEnv(t)
	service := newAuthService(env)
	ctx := context.Background()
	before := env.count(t, &models.User{})

	reg := Registration{Name: "Diego Lima", Email: "diego@email.com", Password: "secret", Type: models.CandidateUser}
	_, err := service.Register(ctx, reg)
	require.NoError(t, err)

	_, err = service.Register(ctx, reg)

	assertKind(t, err, ConflictError)
	assert.Equal(t, before+1, env.count(t, &models.User{}))
}

func Test_Register_Candidate_CreatesEmptyProfileAndSession(t *testing.T) {
	env := newTestEnv(t)
	service := newAuthService(env)
	ctx := context.Background()

	signedIn, err := service.Register(ctx, Registration{
		Name: "Diego Lima", Email: "diego@email.com", Password: "secret", Type: models.CandidateUser,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://ui-avatars.com/api/?name=Diego+Lima&background=7c3aed&color=fff", signedIn.User.Avatar)

	profile, err := env.profiles.GetCandidate(ctx, signedIn.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, models.InterestFindJob, profile.ProfessionalInterest)
	assert.Empty(t, profile.Skills)
	assert.NotNil(t, profile.Skills)

	identity, err := service.Authenticate(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: signedIn.User.ID, Type: models.CandidateUser}, identity)
}

func Test_Register_CompanyWithoutCompanyName_UsesName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	signedIn, err := newAuthService(env).Register(ctx, Registration{
		Name: "Acme", Email: "rh@acme.com", Password: "secret", Type: models.CompanyUser,
	})
	require.NoError(t, err)

	profile, err := env.profiles.GetCompany(ctx, signedIn.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", profile.CompanyName)
}

func Test_Register_InvalidInput_ValidationError(t *testing.T) {
	service := newAuthService(newTestEnv(t))

	_, err := service.Register(context.Background(), Registration{Name: "X", Email: "x@x.com", Password: "p", Type: "admin"})
	assertKind(t, err, ValidationError)

	_, err = service.Register(context.Background(), Registration{Email: "x@x.com", Password: "p", Type: models.CandidateUser})
	assertKind(t, err, ValidationError)
}

func Test_Login_SeededUser_Succeeds(t *testing.T) {
	service := newAuthService(newTestEnv(t))

	signedIn, err := service.Login(context.Background(), joaoEmail, "123456", models.CandidateUser)

	require.NoError(t, err)
	assert.Equal(t, "João Silva", signedIn.User.Name)
	assert.NotEmpty(t, signedIn.Token)
}

func Test_Login_WrongTypeOrPassword_AuthError(t *testing.T) {
	service := newAuthService(newTestEnv(t))
	ctx := context.Background()

	_, err := service.Login(ctx, joaoEmail, "123456", models.CompanyUser)
	assertKind(t, err, AuthError)

	_, err = service.Login(ctx, joaoEmail, "wrong", models.CandidateUser)
	assertKind(t, err, AuthError)

	_, err = service.Login(ctx, "nobody@email.com", "123456", models.CandidateUser)
	assertKind(t, err, AuthError)
}

type countingHasher struct {
	*PasswordHasher
	verified int
}

func (h *countingHasher) Verify(password, encoded string) (bool, error) {
	h.verified++
	return h.PasswordHasher.Verify(password, encoded)
}

func Test_Login_EveryFailure_VerifiesPasswordOnce(t *testing.T) {
	env := newTestEnv(t)
	hasher := &countingHasher{PasswordHasher: env.hasher}
	service := NewAuthService(env.users, hasher, env.sessions)
	ctx := context.Background()

	for _, attempt := range []struct {
		email    string
		password string
		userType models.UserType
	}{
		{joaoEmail, "123456", models.CompanyUser},
		{joaoEmail, "wrong", models.CandidateUser},
		{"nobody@email.com", "123456", models.CandidateUser},
	} {
		hasher.verified = 0

		_, err := service.Login(ctx, attempt.email, attempt.password, attempt.userType)

		assertKind(t, err, AuthError)
		assert.Equal(t, 1, hasher.verified, attempt.email)
	}
}

func Test_Logout_DeletesSession(t *testing.T) {
	service := newAuthService(newTestEnv(t))
	ctx := context.Background()

	signedIn, err := service.Login(ctx, joaoEmail, "123456", models.CandidateUser)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, signedIn.Token))
	require.NoError(t, service.Logout(ctx, ""))

	_, err = service.Authenticate(ctx, signedIn.Token)
	assertKind(t, err, AuthError)
}

func Test_CurrentUser_VanishedUser_NotFound(t *testing.T) {
	service := newAuthService(newTestEnv(t))

	_, err := service.CurrentUser(context.Background(), auth.Identity{UserID: 9999, Type: models.CandidateUser})

	assertKind(t, err, NotFoundError)
}
