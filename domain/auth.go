package domain

import (
	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
)

type JwtCustomClaims struct {
	UserId string `json:"id"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, userId primitive.ObjectID) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (primitive.ObjectID, error)
	HashPassword(ctx ctx.Ctx, password string) (string, error)
	ComparePassword(ctx ctx.Ctx, hash, password string) bool
}
