package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/xerrors"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
)

const DefaultExpiresIn = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	expiresIn time.Duration
	cost      int
}

func New(jwtSecret string, expiresIn time.Duration) domain.AuthUsecase {
	if expiresIn <= 0 {
		expiresIn = DefaultExpiresIn
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		expiresIn: expiresIn,
		cost:      bcrypt.DefaultCost,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, userId primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := domain.JwtCustomClaims{
		UserId: userId.Hex(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(im.expiresIn).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return primitive.NilObjectID, xerrors.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*domain.JwtCustomClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, domain.ErrUnauthorized
	}
	id, err := primitive.ObjectIDFromHex(claims.UserId)
	if err != nil {
		return primitive.NilObjectID, domain.ErrUnauthorized
	}
	return id, nil
}

func (im *impl) HashPassword(ctx ctx.Ctx, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), im.cost)
	if err != nil {
		ctx.WithField("err", err).Error("bcrypt.GenerateFromPassword failed")
		return "", err
	}
	return string(hash), nil
}

func (im *impl) ComparePassword(ctx ctx.Ctx, hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
