package services

import (
	"context"
	"time"

	"tailorix_backend/internal/email"
	"tailorix_backend/internal/logger"
	"tailorix_backend/internal/models"
	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

type SubscriptionService interface {
	ListPlans(ctx context.Context) ([]dto.PlanView, error)
	Activate(ctx context.Context, userID string, req *dto.ActivateSubscriptionRequest) (*dto.SubscriptionStatusView, error)
	Status(ctx context.Context, userID string) (*dto.SubscriptionStatusView, error)

	// ExpireOverdue deactivates lapsed subscriptions. Called by the
	// background sweep worker.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	emailProvider    email.Provider
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		emailProvider:    emailProvider,
	}
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]dto.PlanView, error) {
	plans, err := s.subscriptionRepo.ListActivePlans(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, dto.PlanView{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Currency:     p.Currency,
			DurationDays: p.DurationDays,
		})
	}
	return views, nil
}

func (s *subscriptionService) Activate(ctx context.Context, userID string, req *dto.ActivateSubscriptionRequest) (*dto.SubscriptionStatusView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleTailor {
		return nil, apperrors.ErrInvalidOperation("subscriptions", "Only tailors can subscribe to a plan")
	}

	plan, err := s.subscriptionRepo.FindPlanByID(ctx, req.PlanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.subscriptionRepo.ActivateForUser(ctx, userID, plan); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	expiresAt := time.Now().AddDate(0, 0, plan.DurationDays)
	s.sendActivationEmail(ctx, user, plan.Name, expiresAt)

	return &dto.SubscriptionStatusView{
		Active:    true,
		PlanName:  plan.Name,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *subscriptionService) Status(ctx context.Context, userID string) (*dto.SubscriptionStatusView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	view := &dto.SubscriptionStatusView{
		Active:   user.SubscriptionActive,
		PlanName: user.SubscriptionPlanName,
	}
	if user.SubscriptionExpiresAt != nil {
		view.ExpiresAt = user.SubscriptionExpiresAt.Format(time.RFC3339)
	}
	return view, nil
}

func (s *subscriptionService) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.subscriptionRepo.ExpireOverdue(ctx)
}

func (s *subscriptionService) sendActivationEmail(ctx context.Context, user *models.User, planName string, expiresAt time.Time) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		data := email.TemplateData{
			"Name":      user.FullName(),
			"PlanName":  planName,
			"ExpiresAt": expiresAt.Format("02 Jan 2006"),
		}
		if err := s.emailProvider.SendTemplate(user.Email, "Your Tailorix subscription is active", email.TemplateSubscriptionActive, data); err != nil {
			logger.CtxWithError(ctx, "failed to send subscription email", err, "user_id", user.ID)
		}
	}()
}
