package middleware

import (
	"fmt"
	"strings"

	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/token"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const authKey = "auth"

// VerifyBearer parses and verifies the bearer token and stores the claim
// metadata on the request context.
func VerifyBearer(config *viper.Viper) fiber.Handler {
	secret := []byte(config.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		header := ctx.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		meta, _ := claims["metadata"].(map[string]interface{})
		auth := &token.Claim{
			Metadata: token.Metadata{
				UserID:   asString(meta["user_id"]),
				FullName: asString(meta["full_name"]),
				Role:     asString(meta["role"]),
			},
		}
		if auth.Metadata.UserID == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "token has no user identity"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(authKey, auth)
		return ctx.Next()
	}
}

// VerifyAdmin gates admin routes. Must run after VerifyBearer.
func VerifyAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := GetUser(ctx)
		if auth == nil || auth.Metadata.Role != token.RoleAdmin {
			errObj := httpError.NewForbidden()
			errObj.Message = "admin role required"
			return utils.ResponseError(errObj, ctx)
		}
		return ctx.Next()
	}
}

// GetUser returns the claim stored by VerifyBearer.
func GetUser(ctx *fiber.Ctx) *token.Claim {
	auth, _ := ctx.Locals(authKey).(*token.Claim)
	return auth
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
