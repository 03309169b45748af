package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// SubscriptionsClient wraps the subscription plan endpoints.
type SubscriptionsClient struct {
	c *Client
}

func NewSubscriptionsClient(c *Client) *SubscriptionsClient {
	return &SubscriptionsClient{c: c}
}

type planPayload struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      float64 `json:"discount"`
}

// ListPlans fetches every subscription plan.
func (s *SubscriptionsClient) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	env, err := s.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/Subscription/plans",
		resource: "plans",
	}, "could not load the subscription plans")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the subscription plans")
	}
	return decodeList[domain.SubscriptionPlan](env.Value, "plans")
}

// GetPlan fetches one plan.
func (s *SubscriptionsClient) GetPlan(ctx context.Context, subscriptionID string) (*domain.SubscriptionPlan, error) {
	env, err := s.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/Subscription/plans/" + url.PathEscape(subscriptionID),
		resource: "plans",
	}, "could not load the subscription plan")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the subscription plan")
	}
	return decodePlan(env)
}

// CreatePlan adds a plan.
func (s *SubscriptionsClient) CreatePlan(ctx context.Context, input ports.PlanInput) (*domain.SubscriptionPlan, error) {
	env, err := s.send(ctx, http.MethodPost, "/Subscription/plans", input, "could not create the subscription plan")
	if err != nil {
		return nil, err
	}
	return decodePlan(env)
}

// UpdatePlan replaces a plan's fields.
func (s *SubscriptionsClient) UpdatePlan(ctx context.Context, subscriptionID string, input ports.PlanInput) (*domain.SubscriptionPlan, error) {
	env, err := s.send(ctx, http.MethodPut, "/Subscription/plans/"+url.PathEscape(subscriptionID), input, "could not update the subscription plan")
	if err != nil {
		return nil, err
	}
	return decodePlan(env)
}

// DeletePlan removes a plan. Empty 2xx bodies count as success.
func (s *SubscriptionsClient) DeletePlan(ctx context.Context, subscriptionID string) error {
	env, err := s.c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/Subscription/plans/" + url.PathEscape(subscriptionID),
		resource: "plans",
	}, "could not delete the subscription plan")
	if err != nil {
		return err
	}
	if !env.IsSuccess {
		return env.Failure("could not delete the subscription plan")
	}
	return nil
}

func (s *SubscriptionsClient) send(ctx context.Context, method, path string, input ports.PlanInput, fallback string) (*Envelope, error) {
	body, err := json.Marshal(planPayload{
		Name:          input.Name,
		Type:          input.Type,
		Status:        input.Status,
		OriginalPrice: input.OriginalPrice,
		Discount:      input.Discount,
	})
	if err != nil {
		return nil, err
	}

	env, err := s.c.do(ctx, request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(body),
		contentType: "application/json",
		resource:    "plans",
	}, fallback)
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure(fallback)
	}
	return env, nil
}

func decodePlan(env *Envelope) (*domain.SubscriptionPlan, error) {
	var plan domain.SubscriptionPlan
	if err := decodeValue(env.Value, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
