package services

import (
	"errors"
	"strings"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserProfileUpdate carries the sparse fields of a profile update.
type UserProfileUpdate struct {
	Name            *string
	Email           *string
	Role            *string
	CurrentPassword string
	NewPassword     string
}

// UserService manages accounts: registration, credential checks and the
// cascading cleanup that removes a user together with their orders.
type UserService interface {
	// Register creates an account. Duplicate names or emails are a
	// conflict, distinct from not-found. Admin accounts require the admin
	// code once at least one admin exists.
	Register(user *models.User, adminCode, expectedAdminCode string) error
	// Authenticate checks credentials and returns the matching user.
	Authenticate(name, password string) (*models.User, error)
	// GetUserByID fetches a user by ID.
	GetUserByID(id uint) (*models.User, error)
	// ListUsers returns every account, for administration.
	ListUsers() ([]models.User, error)
	// UpdateProfile applies a sparse profile update. A password change
	// requires the current password to verify.
	UpdateProfile(id uint, update UserProfileUpdate) error
	// Delete removes the account after verifying the password, cleaning
	// up in FK order: order items, then orders, then the user.
	Delete(id uint, password string) error
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) Register(user *models.User, adminCode, expectedAdminCode string) error {
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" || user.Password == "" {
		return errors.New("name, email and password are required")
	}

	var existing models.User
	err := s.db.Where("name = ? OR email = ?", user.Name, user.Email).First(&existing).Error
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if user.Role == models.RoleAdmin {
		// The first admin registers freely; after that the code gates it.
		var admins int64
		if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
			return err
		}
		if admins > 0 && adminCode != expectedAdminCode {
			return ErrInvalidAdminCode
		}
	}

	if err := user.HashPassword(); err != nil {
		return err
	}
	if err := s.db.Create(user).Error; err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return nil
}

func (s *userService) Authenticate(name, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateProfile(id uint, update UserProfileUpdate) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if update.NewPassword != "" {
		if update.CurrentPassword == "" {
			return ErrCurrentPasswordRequired
		}
		if !user.CheckPassword(update.CurrentPassword) {
			return ErrWrongPassword
		}
		rehash := models.User{Password: update.NewPassword}
		if err := rehash.HashPassword(); err != nil {
			return err
		}
		if err := s.db.Model(&models.User{}).Where("id = ?", id).Update("password", rehash.Password).Error; err != nil {
			return err
		}
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		// A renamed account can collide with the unique name/email
		// indexes just like registration does.
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// isUniqueViolation pattern-detects a unique-index rejection from the
// underlying driver's error text.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// Delete removes the user's order items, then their orders, then the user
// itself, as one explicit ordered sequence inside a transaction. Relying
// on implicit FK cascades would hide the cleanup order.
func (s *userService) Delete(id uint, password string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if !user.CheckPassword(password) {
		return ErrWrongPassword
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("order_id IN (?)",
			tx.Model(&models.Order{}).Select("id").Where("user_id = ?", id),
		).Delete(&models.OrderItem{}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return err
		}
		log.WithField("user_id", id).Info("User and owned orders removed")
		return nil
	})
}
