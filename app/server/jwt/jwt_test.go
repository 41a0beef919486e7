package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestSignAndParse(t *testing.T) {
	j, err := New("secret")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	token, err := j.SignToken(&User{ID: 7, Expires: expires})
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, expires, user.Expires)
}

func TestParse_Expired(t *testing.T) {
	j, _ := New("secret")

	token, err := j.SignToken(&User{ID: 7, Expires: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)

	_, err = j.ParseUser(token)
	assert.Error(t, err)
}

func TestParse_WrongKey(t *testing.T) {
	signer, _ := New("secret")
	verifier, _ := New("other")

	token, err := signer.SignToken(&User{ID: 7, Expires: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	_, err = verifier.ParseUser(token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	j, _ := New("secret")

	for _, token := range []string{"", "7", "invalid.token.string"} {
		_, err := j.ParseUser(token)
		assert.Error(t, err, token)
	}
}

func TestParse_RejectsUnsignedAndMissingClaims(t *testing.T) {
	j, _ := New("secret")

	// alg none
	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"id":  7,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = j.ParseUser(unsigned)
	assert.Error(t, err)

	// 没有 id
	noID, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = j.ParseUser(noID)
	assert.Error(t, err)

	// 没有 exp
	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"id": 7,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = j.ParseUser(noExp)
	assert.Error(t, err)
}
