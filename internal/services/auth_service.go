package services

import (
	"errors"

	"github.com/VendleServices/vendle-backend/internal/auth"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService struct {
	userRepo       *repositories.UserRepository
	contractorRepo *repositories.ContractorRepository
}

func NewAuthService(
	userRepo *repositories.UserRepository,
	contractorRepo *repositories.ContractorRepository,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		contractorRepo: contractorRepo,
	}
}

// Register creates the user and, for contractors, an unsigned-NDA profile in
// the same transaction.
func (s *AuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil).WithDetails(map[string]string{"field": "email"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRole(req.Role),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		if user.Role == models.UserRoleContractor {
			profile := &models.ContractorProfile{
				UserID:      user.ID,
				CompanyName: req.CompanyName,
				Phone:       req.Phone,
				City:        req.City,
				LicenseNo:   req.LicenseNo,
			}
			return s.contractorRepo.Create(tx, profile)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueToken(user)
}

// Login verifies the credentials and issues a JWT.
func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account is suspended")
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
