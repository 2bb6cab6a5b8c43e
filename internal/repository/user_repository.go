package repository

import (
	"strings"

	"gorm.io/gorm"

	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
)

type UserRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id uint) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	UpdateUser(user *model.User) error
	ListUsers(streamID, institutionID uint) ([]model.User, error)
	CountByStream(streamID uint) (int64, error)
	CountByInstitution(institutionID uint) (int64, error)
	AddStars(userID uint, delta int) error
	CountWithMoreStars(stars int) (int64, error)
	CountWithEqualStarsSmallerID(stars int, id uint) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) CreateUser(user *model.User) error {
	user.Email = strings.ToLower(user.Email)
	return db.GetDB().Create(user).Error
}

func (r *userRepository) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	err := db.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := db.GetDB().Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *model.User) error {
	return db.GetDB().Save(user).Error
}

// ListUsers returns users, optionally filtered by stream and/or institution.
// Zero means no filter.
func (r *userRepository) ListUsers(streamID, institutionID uint) ([]model.User, error) {
	var users []model.User
	q := db.GetDB().Model(&model.User{})
	if streamID != 0 {
		q = q.Where("stream_id = ?", streamID)
	}
	if institutionID != 0 {
		q = q.Where("institution_id = ?", institutionID)
	}
	err := q.Order("id asc").Find(&users).Error
	return users, err
}

func (r *userRepository) CountByStream(streamID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.User{}).Where("stream_id = ?", streamID).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByInstitution(institutionID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.User{}).Where("institution_id = ?", institutionID).Count(&count).Error
	return count, err
}

// AddStars increments the reward counter atomically in the database, keeping
// the counter monotonic under concurrent attempts.
func (r *userRepository) AddStars(userID uint, delta int) error {
	if delta <= 0 {
		return nil
	}
	return db.GetDB().Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("stars_gathered", gorm.Expr("stars_gathered + ?", delta)).Error
}

func (r *userRepository) CountWithMoreStars(stars int) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.User{}).Where("stars_gathered > ?", stars).Count(&count).Error
	return count, err
}

func (r *userRepository) CountWithEqualStarsSmallerID(stars int, id uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.User{}).
		Where("stars_gathered = ? AND id < ?", stars, id).Count(&count).Error
	return count, err
}
