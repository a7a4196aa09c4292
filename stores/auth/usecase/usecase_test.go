package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
)

func newTestUsecase(expiresIn time.Duration) *impl {
	u := New("jwt-secret", expiresIn).(*impl)
	u.cost = bcrypt.MinCost
	return u
}

func TestSignAndParseToken(t *testing.T) {
	c := ctx.Background()
	u := newTestUsecase(time.Hour)
	userId := primitive.NewObjectID()

	tkn, err := u.SignToken(c, userId)
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)

	id, err := u.ParseToken(c, tkn)
	assert.NoError(t, err)
	assert.Equal(t, userId, id)
}

func TestParseTokenRejects(t *testing.T) {
	c := ctx.Background()
	u := newTestUsecase(time.Hour)

	_, err := u.ParseToken(c, "garbage")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	other, _ := New("other-secret", time.Hour).SignToken(c, primitive.NewObjectID())
	_, err = u.ParseToken(c, other)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{
		UserId:         primitive.NewObjectID().Hex(),
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	})
	ss, err := expired.SignedString([]byte("jwt-secret"))
	assert.NoError(t, err)
	_, err = u.ParseToken(c, ss)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	badId := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{UserId: "nope"})
	ss, err = badId.SignedString([]byte("jwt-secret"))
	assert.NoError(t, err)
	_, err = u.ParseToken(c, ss)
	assert.Equal(t, domain.ErrUnauthorized, err)
}

func TestPassword(t *testing.T) {
	c := ctx.Background()
	u := newTestUsecase(0)
	assert.Equal(t, DefaultExpiresIn, u.expiresIn)

	hash, err := u.HashPassword(c, "secret1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, u.ComparePassword(c, hash, "secret1"))
	assert.False(t, u.ComparePassword(c, hash, "secret2"))
}
