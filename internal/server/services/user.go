// Package services contains server-side business logic. UserService handles
// signup and signin; TaskService owns task CRUD and the ownership check.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Signup registers a user. Input must already be validated. An email that is
// already registered yields common.ErrEmailTaken and nothing is hashed.
func (s *UserService) Signup(ctx context.Context, email, fullName, password string) (*models.PublicUser, error) {
	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		if err == nil {
			return common.ErrEmailTaken
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
		}

		created, err = repo.Create(ctx, &models.User{Email: email, FullName: fullName, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pub := created.Public()
	return &pub, nil
}

// Signin checks the credentials and issues an access token. Unknown email
// and wrong password both yield common.ErrorInvalidCredentials.
func (s *UserService) Signin(ctx context.Context, email, password string) (*models.SigninResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnHash(password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %v", common.ErrorInternal, err)
	}

	return &models.SigninResult{AccessToken: token, User: user.Public()}, nil
}

// burnHash runs one verification against a throwaway hash so unknown emails
// take about as long as wrong passwords.
func (s *UserService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(fmt.Sprintf("%x", common.GenerateRandByteArray(16)))
	})
	if s.dummyHash != "" {
		s.hasher.Verify(password, s.dummyHash)
	}
}
