package auth

import (
	"context"
	"errors"
	"strings"

	"merchex/errs"
	"merchex/user"
)

var (
	ErrInvalidCredentials  = errs.Errorf(errs.EUNAUTHORIZED, "auth: invalid credentials")
	ErrInvalidRefreshToken = errs.Errorf(errs.EUNAUTHORIZED, "auth: invalid refresh token")
)

type Service interface {
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetUser(ctx context.Context, id int64) (user.User, error)
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
}

type TokenProvider interface {
	GenerateAccessToken(u user.User) (string, error)
	GenerateRefreshToken(u user.User) (string, error)
	ParseRefreshToken(refreshToken string) (int64, error)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Usecase struct {
	userRepo       UserRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
}

func NewUsecase(userRepo UserRepository, passwordHasher PasswordHasher, tokenProvider TokenProvider) *Usecase {
	return &Usecase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
	}
}

// Login checks the password of the named user and issues a token pair.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (uc *Usecase) Login(ctx context.Context, username, password string) (TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return TokenPair{}, ErrInvalidCredentials
	}

	u, err := uc.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, user.ErrUserNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	} else if err != nil {
		return TokenPair{}, err
	}

	if err := uc.passwordHasher.Compare(u.PasswordHash, password); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return uc.issue(u)
}

func (uc *Usecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	userID, err := uc.tokenProvider.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	u, err := uc.userRepo.GetUser(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return TokenPair{}, ErrInvalidRefreshToken
	} else if err != nil {
		return TokenPair{}, err
	}

	return uc.issue(u)
}

func (uc *Usecase) issue(u user.User) (TokenPair, error) {
	accessToken, err := uc.tokenProvider.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := uc.tokenProvider.GenerateRefreshToken(u)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
