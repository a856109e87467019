package postgres

import (
	"context"
	"errors"
	"time"

	"merchex/errs"
	"merchex/user"

	"gorm.io/gorm"
)

var errUnknownGroup = errs.Invalid(map[string]string{"groups": "group does not exist"})

// UserModel represents the database model for users
type UserModel struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"not null;unique"`
	Email        string    `gorm:"not null;default:''"`
	PasswordHash string    `gorm:"not null"`
	DateJoined   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserGroupModel is a row of the user/group membership table.
type UserGroupModel struct {
	UserID  int64 `gorm:"primaryKey"`
	GroupID int64 `gorm:"primaryKey"`
}

func (UserGroupModel) TableName() string {
	return "user_groups"
}

// UserRepository implements user.Repository and auth.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the user and its group memberships in one transaction.
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toUserModel(u)
	model.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return replaceMemberships(tx, model.ID, u.Groups)
	})
	if err != nil {
		return user.User{}, userError(err)
	}
	return toDomainUser(model, u.Groups), nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (user.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUsername implements [auth.UserRepository].
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.first(ctx, "username = ?", username)
}

// AllUsers returns users ordered by date joined, newest first.
func (r *UserRepository) AllUsers(ctx context.Context) ([]user.User, error) {
	var models []UserModel
	db := r.db.WithContext(ctx)
	if err := db.Order("date_joined DESC, id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, len(models))
	for i, model := range models {
		ids[i] = model.ID
	}
	memberships, err := loadMemberships(db, ids)
	if err != nil {
		return nil, err
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = toDomainUser(model, memberships[model.ID])
	}
	return users, nil
}

// UpdateUser overwrites the profile and replaces the group memberships.
func (r *UserRepository) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toUserModel(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&UserModel{ID: u.ID}).
			Select("username", "email", "password_hash").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return replaceMemberships(tx, u.ID, u.Groups)
	})
	if err != nil {
		return user.User{}, userError(err)
	}
	return r.GetUser(ctx, u.ID)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (user.User, error) {
	var model UserModel
	db := r.db.WithContext(ctx)
	err := db.Where(query, arg).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, user.ErrUserNotFound
	} else if err != nil {
		return user.User{}, err
	}

	memberships, err := loadMemberships(db, []int64{model.ID})
	if err != nil {
		return user.User{}, err
	}
	return toDomainUser(model, memberships[model.ID]), nil
}

func replaceMemberships(tx *gorm.DB, userID int64, groupIDs []int64) error {
	if err := tx.Where("user_id = ?", userID).Delete(&UserGroupModel{}).Error; err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return nil
	}
	rows := make([]UserGroupModel, 0, len(groupIDs))
	seen := make(map[int64]bool, len(groupIDs))
	for _, id := range groupIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, UserGroupModel{UserID: userID, GroupID: id})
	}
	return tx.Create(&rows).Error
}

func loadMemberships(db *gorm.DB, userIDs []int64) (map[int64][]int64, error) {
	memberships := make(map[int64][]int64, len(userIDs))
	if len(userIDs) == 0 {
		return memberships, nil
	}
	var rows []UserGroupModel
	if err := db.Where("user_id IN ?", userIDs).Order("group_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		memberships[row.UserID] = append(memberships[row.UserID], row.GroupID)
	}
	return memberships, nil
}

func userError(err error) error {
	switch {
	case isUniqueViolation(err):
		return user.ErrUsernameTaken
	case isForeignKeyViolation(err):
		return errUnknownGroup
	}
	return err
}

func toDomainUser(model UserModel, groups []int64) user.User {
	if groups == nil {
		groups = []int64{}
	}
	return user.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Groups:       groups,
		DateJoined:   model.DateJoined.UTC(),
	}
}

func toUserModel(u user.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DateJoined:   u.DateJoined,
	}
}
