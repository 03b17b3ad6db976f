package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/pkg/jwtx"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

type UserService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration

	Now func() time.Time
}

// Register creates the user and returns a bearer token for it.
func (s *UserService) Register(ctx context.Context, name, phone, email string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	u := domain.User{Name: name, Phone: phone, Email: email}
	id, err := s.Store.Users().CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("registration rejected, phone or email taken")
			return domain.User{}, "", ErrUserExists
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}
	u.ID = id

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}
	claims := jwtx.NewClaims(strconv.FormatInt(id, 10), name, s.Issuer, ttl, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign token", slog.Int64("user_id", id), slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user registered", slog.Int64("user_id", id))
	return u, token, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
