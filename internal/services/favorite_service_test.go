package services

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Toggle_Twice_RestoresOriginalState(t *testing.T) {
	env := newTestEnv(t)
	service := NewFavoriteService(env.favorites, env.jobs)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)
	jobID := env.jobID(t, mobileJob)

	isFavorite, err := service.Toggle(ctx, joao, jobID)
	require.NoError(t, err)
	assert.True(t, isFavorite)

	isFavorite, err = service.Toggle(ctx, joao, jobID)
	require.NoError(t, err)
	assert.False(t, isFavorite)

	favorites, err := env.jobs.ListFavorites(ctx, joao.UserID)
	require.NoError(t, err)
	for _, job := range favorites {
		assert.NotEqual(t, jobID, job.ID)
	}
}

func Test_Toggle_UnknownJob_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewFavoriteService(env.favorites, env.jobs).Toggle(context.Background(), env.identity(t, joaoEmail), 9999)

	assertKind(t, err, NotFoundError)
}

func Test_Toggle_AsCompany_AccessDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewFavoriteService(env.favorites, env.jobs).Toggle(context.Background(), env.identity(t, techCorpEmail), env.jobID(t, mobileJob))

	assertKind(t, err, AuthorizationError)
}
