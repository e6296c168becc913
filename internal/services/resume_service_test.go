package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/repositories"
	"github.com/maxaizer/selectflow/internal/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func newResumeService(t *testing.T, env *testEnv) *ResumeService {
	t.Helper()

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewResumeService(env.resumes, files)
}

func Test_Upload_TextFile_StoresFileAndContent(t *testing.T) {
	env := newTestEnv(t)
	service := newResumeService(t, env)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)

	resume, err := service.Upload(ctx, joao, "../cv.txt", []byte("João Silva\nGo, React\n"))
	require.NoError(t, err)

	assert.Equal(t, "João Silva\nGo, React", resume.Content)
	assert.Equal(t, "cv.txt", resume.FileName)
	stored, err := os.ReadFile(resume.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "João Silva\nGo, React\n", string(stored))

	latest, err := env.resumes.Latest(ctx, joao.UserID)
	require.NoError(t, err)
	assert.Equal(t, resume.ID, latest.ID)
}

type failingResumes struct {
	*repositories.Resumes
}

func (failingResumes) Create(context.Context, *models.Resume) error {
	return errors.New("database is locked")
}

func Test_Upload_RecordFails_RemovesStoredFile(t *testing.T) {
	env := newTestEnv(t)
	root := t.TempDir()
	files, err := storage.NewLocalStorage(root)
	require.NoError(t, err)
	service := NewResumeService(failingResumes{env.resumes}, files)

	_, err = service.Upload(context.Background(), env.identity(t, joaoEmail), "cv.txt", []byte("João Silva"))
	require.Error(t, err)

	var stored []string
	require.NoError(t, filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err == nil && !entry.IsDir() {
			stored = append(stored, path)
		}
		return err
	}))
	assert.Empty(t, stored)
}

func Test_Upload_UnsupportedOrEmpty_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	service := newResumeService(t, env)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)

	_, err := service.Upload(ctx, joao, "cv.png", []byte{0x89, 0x50})
	assertKind(t, err, ValidationError)

	_, err = service.Upload(ctx, joao, "cv.txt", []byte("   \n"))
	assertKind(t, err, ValidationError)
}

func Test_SaveText_AsCompany_AccessDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := newResumeService(t, env).SaveText(context.Background(), env.identity(t, techCorpEmail), "cv", "")

	assertKind(t, err, AuthorizationError)
}

func Test_List_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	service := newResumeService(t, env)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)

	saved, err := service.SaveText(ctx, joao, "Versão nova", "novo.txt")
	require.NoError(t, err)

	resumes, err := service.List(ctx, joao)
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Equal(t, saved.ID, resumes[0].ID)
}
