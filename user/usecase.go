package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"merchex/errs"
	"merchex/group"
)

type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, id int64, p Patch) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	AllUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

// GroupFinder resolves the groups a user is placed in.
type GroupFinder interface {
	GetGroup(ctx context.Context, id int64) (group.Group, error)
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
	groups GroupFinder
	now    func() time.Time
}

func NewUsecase(r Repository, h PasswordHasher, groups GroupFinder) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
		groups: groups,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ListUsers returns all users, most recently joined first.
func (uc *Usecase) ListUsers(ctx context.Context) ([]User, error) {
	return uc.r.AllUsers(ctx)
}

func (uc *Usecase) GetUser(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrUserNotFound
	}
	return uc.r.GetUser(ctx, id)
}

func (uc *Usecase) CreateUser(ctx context.Context, u User) (User, error) {
	u = u.Normalize()
	u.ID = 0
	u.PasswordHash = ""

	fields := map[string]string{}
	if strings.TrimSpace(u.Password) == "" {
		u.Password = ""
		fields["password"] = "cannot be blank"
	}
	if err := uc.validate(ctx, u, fields); err != nil {
		return User{}, err
	}

	hashed, err := uc.hasher.Hash(u.Password)
	if err != nil {
		return User{}, err
	}
	u.Password = ""
	u.PasswordHash = hashed
	u.DateJoined = uc.now()
	return uc.r.CreateUser(ctx, u)
}

// UpdateUser applies p on top of the stored user. The password hash is only
// replaced when p carries a new password.
func (uc *Usecase) UpdateUser(ctx context.Context, id int64, p Patch) (User, error) {
	existing, err := uc.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}

	u := p.Apply(existing)
	u.Password = ""
	if p.Password != nil {
		u.Password = *p.Password
	}
	u = u.Normalize()

	fields := map[string]string{}
	if p.Password != nil && strings.TrimSpace(u.Password) == "" {
		u.Password = ""
		fields["password"] = "cannot be blank"
	}
	if err := uc.validate(ctx, u, fields); err != nil {
		return User{}, err
	}

	if u.Password != "" {
		hashed, err := uc.hasher.Hash(u.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hashed
		u.Password = ""
	}
	return uc.r.UpdateUser(ctx, u)
}

func (uc *Usecase) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrUserNotFound
	}
	return uc.r.DeleteUser(ctx, id)
}

func (uc *Usecase) validate(ctx context.Context, u User, fields map[string]string) error {
	if err := errs.Merge(fields, u.Validate()); err != nil {
		return err
	}
	if _, ok := fields["groups"]; !ok {
		for _, id := range u.Groups {
			_, err := uc.groups.GetGroup(ctx, id)
			if errors.Is(err, group.ErrGroupNotFound) {
				fields["groups"] = fmt.Sprintf("group %d does not exist", id)
				break
			}
			if err != nil {
				return err
			}
		}
	}
	if len(fields) > 0 {
		return errs.Invalid(fields)
	}
	return nil
}
