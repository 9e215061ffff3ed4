package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/cryptox"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/dmitrijs2005/gophchat/internal/server/config"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
)

type UserService struct {
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(repomanager repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:   repomanager,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
	}
}

// Seed creates or replaces a demo account.
func (s *UserService) Seed(ctx context.Context, userID, password string) error {
	salt := cryptox.NewSalt()
	user := &models.User{
		ID:           userID,
		Salt:         salt,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
	}
	if err := s.repomanager.Users().Put(ctx, user); err != nil {
		return fmt.Errorf("error seeding user %s: %w", userID, err)
	}
	return nil
}

// Login checks the password and returns a signed token. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userID, password string) (string, error) {
	user, err := s.repomanager.Users().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !cryptox.CheckPassword([]byte(password), user.Salt, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Verify reports whether token is a live token issued to userID.
func (s *UserService) Verify(userID, token string) bool {
	got, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	return err == nil && got == userID
}
