package domain

// Subscription plan statuses as emitted by the upstream API.
const (
	PlanStatusActive   = "active"
	PlanStatusInactive = "inactive"
)

// SubscriptionPlan is one purchasable plan. Discount is a percentage in [0,100].
type SubscriptionPlan struct {
	SubscriptionID string  `json:"subscriptionId"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	OriginalPrice  float64 `json:"originalPrice"`
	Discount       float64 `json:"discount"`
}

// FinalPrice is the effective price after applying the percentage discount.
func (p SubscriptionPlan) FinalPrice() float64 {
	return p.OriginalPrice * (1 - p.Discount/100)
}
