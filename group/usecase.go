package group

import "context"

type Service interface {
	ListGroups(ctx context.Context) ([]Group, error)
	GetGroup(ctx context.Context, id int64) (Group, error)
	CreateGroup(ctx context.Context, g Group) (Group, error)
	UpdateGroup(ctx context.Context, id int64, name *string) (Group, error)
	DeleteGroup(ctx context.Context, id int64) error
}

type Repository interface {
	CreateGroup(ctx context.Context, g Group) (Group, error)
	GetGroup(ctx context.Context, id int64) (Group, error)
	AllGroups(ctx context.Context) ([]Group, error)
	UpdateGroup(ctx context.Context, g Group) (Group, error)
	DeleteGroup(ctx context.Context, id int64) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{
		r: r,
	}
}

// ListGroups returns all groups ordered by name.
func (uc *Usecase) ListGroups(ctx context.Context) ([]Group, error) {
	return uc.r.AllGroups(ctx)
}

func (uc *Usecase) GetGroup(ctx context.Context, id int64) (Group, error) {
	if id <= 0 {
		return Group{}, ErrGroupNotFound
	}
	return uc.r.GetGroup(ctx, id)
}

func (uc *Usecase) CreateGroup(ctx context.Context, g Group) (Group, error) {
	g = g.Normalize()
	g.ID = 0
	if err := g.Validate(); err != nil {
		return Group{}, err
	}
	return uc.r.CreateGroup(ctx, g)
}

// UpdateGroup renames the group. A nil name keeps the current one.
func (uc *Usecase) UpdateGroup(ctx context.Context, id int64, name *string) (Group, error) {
	g, err := uc.GetGroup(ctx, id)
	if err != nil {
		return Group{}, err
	}
	if name != nil {
		g.Name = *name
	}
	g = g.Normalize()
	if err := g.Validate(); err != nil {
		return Group{}, err
	}
	return uc.r.UpdateGroup(ctx, g)
}

func (uc *Usecase) DeleteGroup(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrGroupNotFound
	}
	return uc.r.DeleteGroup(ctx, id)
}
