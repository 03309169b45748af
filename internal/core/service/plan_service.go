package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// PlanService manages subscription plans. The effective price is computed
// here so every consumer sees the same discount arithmetic.
type PlanService struct {
	plans ports.PlanCatalog
	audit auditor
	log   zerolog.Logger
}

func NewPlanService(plans ports.PlanCatalog, audit ports.AuditRepository, log zerolog.Logger) *PlanService {
	return &PlanService{
		plans: plans,
		audit: auditor{repo: audit, log: log},
		log:   log,
	}
}

func (s *PlanService) ListPlans(ctx context.Context) ([]ports.PlanView, error) {
	plans, err := s.plans.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ports.PlanView, len(plans))
	for i, p := range plans {
		views[i] = planView(p)
	}
	return views, nil
}

func (s *PlanService) GetPlan(ctx context.Context, subscriptionID string) (*ports.PlanView, error) {
	plan, err := s.plans.GetPlan(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	view := planView(*plan)
	return &view, nil
}

func (s *PlanService) CreatePlan(ctx context.Context, actor domain.SessionUser, input ports.PlanInput) (*ports.PlanView, error) {
	plan, err := s.plans.CreatePlan(ctx, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "plan.create", "subscription_plan", plan.SubscriptionID)
	s.log.Info().Str("plan_id", plan.SubscriptionID).Str("name", input.Name).Str("actor_id", actor.UserID).Msg("subscription plan created")
	view := planView(*plan)
	return &view, nil
}

func (s *PlanService) UpdatePlan(ctx context.Context, actor domain.SessionUser, subscriptionID string, input ports.PlanInput) (*ports.PlanView, error) {
	plan, err := s.plans.UpdatePlan(ctx, subscriptionID, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "plan.update", "subscription_plan", subscriptionID)
	view := planView(*plan)
	return &view, nil
}

func (s *PlanService) DeletePlan(ctx context.Context, actor domain.SessionUser, subscriptionID string) error {
	if err := s.plans.DeletePlan(ctx, subscriptionID); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "plan.delete", "subscription_plan", subscriptionID)
	s.log.Info().Str("plan_id", subscriptionID).Str("actor_id", actor.UserID).Msg("subscription plan deleted")
	return nil
}

func planView(p domain.SubscriptionPlan) ports.PlanView {
	return ports.PlanView{SubscriptionPlan: p, FinalPrice: p.FinalPrice()}
}
