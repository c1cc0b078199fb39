package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meinhoongagan/tutor-booking/db"
	"github.com/meinhoongagan/tutor-booking/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthPolicy struct {
	AllowAdminSignup bool
	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}

// UserService is the credential store.
type UserService struct {
	db     *gorm.DB
	policy AuthPolicy
	logger *zap.Logger
}

func NewUserService(conn *gorm.DB, policy AuthPolicy, logger *zap.Logger) *UserService {
	if policy.BcryptCost == 0 {
		policy.BcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: conn, policy: policy, logger: logger}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, invalid("Name, email, and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, invalid("Email address is invalid")
	}
	if in.IsAdmin && !s.policy.AllowAdminSignup {
		return nil, invalid("Admin registration is disabled")
	}

	tx := s.db.WithContext(ctx)

	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.policy.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	if in.IsAdmin {
		role = models.RoleAdmin
	}

	user := &models.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := tx.Create(user).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Authenticate verifies credentials. With adminLogin set, a valid non-admin
// account is rejected with ErrAdminRequired.
func (s *UserService) Authenticate(ctx context.Context, email, password string, adminLogin bool) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if adminLogin && !user.IsAdmin() {
		s.logger.Warn("Non-admin attempted admin login", zap.String("user_id", user.ID))
		return nil, ErrAdminRequired
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("User")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("User")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) SetRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, invalid("Role must be USER or ADMIN")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role

	s.logger.Info("User role changed", zap.String("user_id", id), zap.String("role", string(role)))
	return user, nil
}
