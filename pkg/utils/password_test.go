package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/staynest-backend/pkg/utils"
)

func TestHashPassword_ProducesArgon2idDigest(t *testing.T) {
	digest, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.NotContains(t, digest, "s3cret-pass")
}

func TestHashPassword_SamePasswordDifferentDigests(t *testing.T) {
	first, err := utils.HashPassword("same-password")
	require.NoError(t, err)
	second, err := utils.HashPassword("same-password")
	require.NoError(t, err)

	// Random per-call salt: equal passwords never share a digest
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	digest, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := utils.VerifyPassword("correct horse", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = utils.VerifyPassword("wrong horse", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	_, err := utils.VerifyPassword("anything", "not-a-digest")
	assert.Error(t, err)

	_, err = utils.VerifyPassword("anything", "$bcrypt$v=19$m=65536,t=3,p=2$abc$def")
	assert.Error(t, err)
}
