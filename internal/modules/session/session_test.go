package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestSniffClaims(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"email":    "admin@wolfly.in",
		"role":     "admin",
		"is_admin": true,
	})

	c := SniffClaims(tok)
	assert.Equal(t, "admin@wolfly.in", c.Email)
	assert.True(t, c.Admin())
}

func TestSniffClaimsRoleOnly(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"email": "x@y.z", "role": "admin"})
	assert.True(t, SniffClaims(tok).Admin())

	tok = signedToken(t, jwt.MapClaims{"email": "x@y.z", "role": "customer"})
	assert.False(t, SniffClaims(tok).Admin())
}

func TestSniffClaimsOpaqueToken(t *testing.T) {
	c := SniffClaims("not-a-jwt")
	assert.Empty(t, c.Email)
	assert.False(t, c.Admin())
}

func TestStoreCreateGetDelete(t *testing.T) {
	s := NewStore(time.Hour)

	sess := s.Create(signedToken(t, jwt.MapClaims{"email": "u@wolfly.in"}))
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "u@wolfly.in", sess.Claims.Email)

	got := s.Get(sess.ID)
	require.NotNil(t, got)
	assert.Equal(t, sess.Token, got.Token)

	s.Delete(sess.ID)
	assert.Nil(t, s.Get(sess.ID))
}

func TestStoreUnknownID(t *testing.T) {
	s := NewStore(time.Hour)
	assert.Nil(t, s.Get("nope"))
}

func TestTokenSourceFollowsStore(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("tok-abc")

	ts := s.TokenSource(sess.ID)
	assert.Equal(t, "tok-abc", ts.Token())

	// logout elsewhere: the source must observe it
	s.Delete(sess.ID)
	assert.Empty(t, ts.Token())
}

func TestTokenSourceClear(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("tok-abc")

	ts := s.TokenSource(sess.ID)
	ts.Clear()

	assert.Nil(t, s.Get(sess.ID))
	assert.Empty(t, ts.Token())
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(time.Millisecond)
	sess := s.Create("tok")

	time.Sleep(5 * time.Millisecond)
	assert.Nil(t, s.Get(sess.ID))
	assert.Empty(t, s.TokenSource(sess.ID).Token())
}
