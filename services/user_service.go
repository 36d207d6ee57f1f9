package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"lodge-backend/models"
	"lodge-backend/utils"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user_not_found")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Preload("Lodge").Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return users, nil
}

// Create hashes the password and stores the user. Lodge-scoped admins must
// reference an existing lodge; super admins must not carry a scope.
func (s *UserService) Create(name, email, password, role string, lodgeID *uint) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errors.New("validation: email and password required")
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return nil, errors.New("validation: unknown role")
	}
	if role == models.RoleSuperAdmin {
		lodgeID = nil
	} else if lodgeID != nil {
		var lodge models.Lodge
		if err := s.DB.First(&lodge, *lodgeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("lodge_not_found")
			}
			return nil, fmt.Errorf("db error checking lodge %d: %w", *lodgeID, err)
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Role:     role,
		LodgeID:  lodgeID,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.New("validation: email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Delete(id uint) error {
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("user_not_found")
	}
	return nil
}
