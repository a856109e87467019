package postgres

import (
	"context"
	"errors"

	"merchex/group"

	"gorm.io/gorm"
)

// GroupModel represents the database model for groups
type GroupModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null;unique"`
}

// TableName specifies the table name for GORM
func (GroupModel) TableName() string {
	return "groups"
}

// GroupRepository implements group.Repository interface
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) CreateGroup(ctx context.Context, g group.Group) (group.Group, error) {
	model := GroupModel{Name: g.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return group.Group{}, group.ErrNameTaken
		}
		return group.Group{}, err
	}
	return group.Group{ID: model.ID, Name: model.Name}, nil
}

func (r *GroupRepository) GetGroup(ctx context.Context, id int64) (group.Group, error) {
	var model GroupModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return group.Group{}, group.ErrGroupNotFound
	} else if err != nil {
		return group.Group{}, err
	}
	return group.Group{ID: model.ID, Name: model.Name}, nil
}

// AllGroups returns groups ordered by name.
func (r *GroupRepository) AllGroups(ctx context.Context) ([]group.Group, error) {
	var models []GroupModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	groups := make([]group.Group, len(models))
	for i, model := range models {
		groups[i] = group.Group{ID: model.ID, Name: model.Name}
	}
	return groups, nil
}

func (r *GroupRepository) UpdateGroup(ctx context.Context, g group.Group) (group.Group, error) {
	result := r.db.WithContext(ctx).
		Model(&GroupModel{ID: g.ID}).
		Update("name", g.Name)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return group.Group{}, group.ErrNameTaken
		}
		return group.Group{}, result.Error
	}
	if result.RowsAffected == 0 {
		return group.Group{}, group.ErrGroupNotFound
	}
	return g, nil
}

// DeleteGroup removes the group. Memberships go with it via ON DELETE CASCADE.
func (r *GroupRepository) DeleteGroup(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GroupModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return group.ErrGroupNotFound
	}
	return nil
}
