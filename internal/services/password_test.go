package services

import (
	"github.com/maxaizer/selectflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func newCheapHasher() *PasswordHasher {
	return NewPasswordHasher(config.PasswordConfig{Memory: 64, Iterations: 1, Parallelism: 1})
}

func Test_PasswordHasher_Hash_EncodesParameters(t *testing.T) {
	hash, err := newCheapHasher().Hash("123456")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$"))
}

func Test_PasswordHasher_SamePassword_DifferentSalts(t *testing.T) {
	hasher := newCheapHasher()

	first, err := hasher.Hash("123456")
	require.NoError(t, err)
	second, err := hasher.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func Test_PasswordHasher_Verify(t *testing.T) {
	hasher := newCheapHasher()
	hash, err := hasher.Hash("123456")
	require.NoError(t, err)

	ok, err := hasher.Verify("123456", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("654321", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_PasswordHasher_Verify_MalformedHash_ReturnsError(t *testing.T) {
	_, err := newCheapHasher().Verify("123456", "e10adc3949ba59abbe56e057f20f883e")

	assert.ErrorIs(t, err, errMalformedHash)
}
