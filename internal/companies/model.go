package companies

import (
	"strings"
	"time"
)

// SubscriptionPlan determines how many projects a company may hold.
type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "Basic"
	PlanPro        SubscriptionPlan = "Pro"
	PlanEnterprise SubscriptionPlan = "Enterprise"
)

// DefaultProjectLimit is the Basic plan allowance.
const DefaultProjectLimit = 5

// NewBasic returns an unsaved company on the Basic plan with the default
// project limit. Signup goes through this so plan defaults live in one
// place.
func NewBasic(name string) Company {
	return Company{
		Name:         strings.TrimSpace(name),
		Plan:         PlanBasic,
		ProjectLimit: DefaultProjectLimit,
	}
}

// Company is a tenant. Every project, section, and item belongs to exactly
// one company through its owning project.
type Company struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Plan         SubscriptionPlan `json:"plan"`
	ProjectLimit int              `json:"project_limit"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
