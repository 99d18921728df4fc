package services

import (
	"context"
	"net/http"

	"tailorix_backend/internal/auth"
	"tailorix_backend/internal/email"
	"tailorix_backend/internal/logger"
	"tailorix_backend/internal/models"
	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserView, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &authService{userRepo: userRepo, emailProvider: emailProvider}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	role := models.UserRole(req.Role)
	if err := s.validateRoleFields(role, req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
		Gender:       req.Gender,
		IsActive:     true,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
	}

	if role == models.UserRoleTailor {
		user.BusinessName = req.BusinessName
		user.BusinessCity = req.BusinessCity
		user.BusinessState = req.BusinessState
		user.BusinessPincode = req.BusinessPincode
		user.TailorType = req.TailorType
		user.Experience = req.Experience
		user.PickupDelivery = req.PickupDelivery
		user.SetSpecializations(req.Specializations)
		user.SetServices(req.Services)

		// Only store a location pair the ranking queries can trust.
		if req.Latitude != nil && req.Longitude != nil {
			user.Latitude = req.Latitude
			user.Longitude = req.Longitude
			if !user.HasValidLocation() {
				return nil, apperrors.ErrInvalidCoordinates(map[string]string{
					"lat": "latitude must be between -90 and 90",
					"lng": "longitude must be between -180 and 180",
				})
			}
		}
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.Wrap(err, apperrors.CodeAlreadyExists, "auth",
				"An account with this email already exists", http.StatusConflict)
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcomeEmail(ctx, user)

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: userView(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: userView(user)}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	view := userView(user)
	return &view, nil
}

func (s *authService) validateRoleFields(role models.UserRole, req *dto.RegisterRequest) error {
	switch role {
	case models.UserRoleCustomer:
		return nil
	case models.UserRoleTailor:
		fields := map[string]string{}
		if req.BusinessName == "" {
			fields["businessName"] = "business name is required for tailors"
		}
		if req.BusinessCity == "" {
			fields["businessCity"] = "business city is required for tailors"
		}
		if len(fields) > 0 {
			return apperrors.ValidationError(fields)
		}
		return nil
	default:
		return apperrors.NewBadRequestError("Role must be customer or tailor")
	}
}

// Delivery is best effort; registration never fails on an email error.
func (s *authService) sendWelcomeEmail(ctx context.Context, user *models.User) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		data := email.TemplateData{
			"Name":     user.FullName(),
			"IsTailor": user.Role == models.UserRoleTailor,
		}
		if err := s.emailProvider.SendTemplate(user.Email, "Welcome to Tailorix", email.TemplateWelcome, data); err != nil {
			logger.CtxWithError(ctx, "failed to send welcome email", err, "user_id", user.ID)
		}
	}()
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth",
		"Invalid email or password", http.StatusUnauthorized)
}

func userView(u *models.User) dto.UserView {
	return dto.UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
	}
}
