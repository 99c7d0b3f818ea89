package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundTrip(t *testing.T) {
	a := New()

	enc, err := a.GenerateFromPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$"))

	ok, err := a.VerifyPasswd("correct horse battery", enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong password", enc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswdRejectsMalformedHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("anything", "not-a-phc-string")
	assert.Error(t, err)
}
