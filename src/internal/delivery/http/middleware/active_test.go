package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubUserStore struct {
	FindByIDFn func(ctx context.Context, id string) (*entity.User, error)
}

func (s *stubUserStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return s.FindByIDFn(ctx, id)
}

func newActiveApp(users *stubUserStore, claim *token.Claim) *fiber.App {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		if claim != nil {
			ctx.Locals(authKey, claim)
		}
		return ctx.Next()
	})
	app.Use(VerifyActive(users, log.Log{LogLevel: 99}))
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendString("pong")
	})
	return app
}

func TestVerifyActiveAllowsEnabledUser(t *testing.T) {
	users := &stubUserStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{UserID: id, IsDisabled: false}, nil
		},
	}
	app := newActiveApp(users, &token.Claim{Metadata: token.Metadata{UserID: "user-1"}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVerifyActiveRejectsDisabledUser(t *testing.T) {
	users := &stubUserStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{UserID: id, IsDisabled: true, WalletBalance: 1000}, nil
		},
	}
	app := newActiveApp(users, &token.Claim{Metadata: token.Metadata{UserID: "user-1"}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVerifyActiveRejectsUnknownUser(t *testing.T) {
	users := &stubUserStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, nil
		},
	}
	app := newActiveApp(users, &token.Claim{Metadata: token.Metadata{UserID: "ghost"}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyActiveRequiresAuthClaim(t *testing.T) {
	users := &stubUserStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{UserID: id}, nil
		},
	}
	app := newActiveApp(users, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyActiveLookupFailure(t *testing.T) {
	users := &stubUserStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, errors.New("db down")
		},
	}
	app := newActiveApp(users, &token.Claim{Metadata: token.Metadata{UserID: "user-1"}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
