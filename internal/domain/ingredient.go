package domain

// Urgency describes how soon the user needs the order fulfilled.
type Urgency string

const (
	UrgencyPlanning Urgency = "planning"
	UrgencyUrgent   Urgency = "urgent"
)

// Valid reports whether the urgency is one of the known values.
func (u Urgency) Valid() bool {
	return u == UrgencyPlanning || u == UrgencyUrgent
}

// Ingredient is a single food requirement produced by the extraction
// collaborator. Immutable for the duration of one planning run.
type Ingredient struct {
	Name     string  `json:"name" binding:"required"`
	Form     string  `json:"form,omitempty"` // e.g. "whole", "boneless", "ground"
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Optional bool    `json:"optional,omitempty"`
}

// Preferences holds the user-supplied knobs consumed by scoring and
// store-split: urgency plus priority weights for budget, health and
// packaging concerns.
type Preferences struct {
	Urgency         Urgency `json:"urgency,omitempty"`
	BudgetWeight    float64 `json:"budgetWeight,omitempty"`
	HealthWeight    float64 `json:"healthWeight,omitempty"`
	PackagingWeight float64 `json:"packagingWeight,omitempty"`
}

// Normalized returns a copy with defaults applied: planning urgency and
// neutral (1.0) weights for anything unset or negative.
func (p Preferences) Normalized() Preferences {
	if !p.Urgency.Valid() {
		p.Urgency = UrgencyPlanning
	}
	if p.BudgetWeight <= 0 {
		p.BudgetWeight = 1.0
	}
	if p.HealthWeight <= 0 {
		p.HealthWeight = 1.0
	}
	if p.PackagingWeight <= 0 {
		p.PackagingWeight = 1.0
	}
	return p
}
