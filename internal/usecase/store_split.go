package usecase

import (
	"fmt"

	"github.com/mealcart/backend/internal/domain"
)

// StoreSplitPlanner partitions the per-ingredient winners into the minimum
// number of stores, applying the single-item merge heuristic. Every
// classification decision and rule application lands in the reasoning
// trace, in order.
type StoreSplitPlanner struct {
	rules *Rules
}

// NewStoreSplitPlanner creates a planner over the given rule snapshot.
func NewStoreSplitPlanner(rules *Rules) *StoreSplitPlanner {
	return &StoreSplitPlanner{rules: rules}
}

// classified pairs an ingredient name with its store requirement.
type classified struct {
	name        string
	category    string
	requirement domain.StoreType
}

// Plan classifies each available ingredient's store requirement, applies
// the 1-item efficiency rule, and assembles the final store groups.
// Unavailable ingredients are listed separately and never counted toward
// the store total.
func (p *StoreSplitPlanner) Plan(
	selections []domain.Selection,
	unavailable []string,
	urgency domain.Urgency,
) domain.StoreSplitResult {
	result := domain.StoreSplitResult{
		Groups:                 []domain.StoreGroup{},
		UnavailableIngredients: append([]string{}, unavailable...),
	}
	if !urgency.Valid() {
		urgency = domain.UrgencyPlanning
	}

	items := make([]classified, 0, len(selections))
	var specialtyItems []classified

	for _, sel := range selections {
		category := sel.Trace.QueryKey
		requirement, ruleName := p.rules.ClassifyStore(category)
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"classified %q as %s (rule: %s)", sel.Ingredient.Name, requirement, ruleName))
		item := classified{name: sel.Ingredient.Name, category: category, requirement: requirement}
		items = append(items, item)
		if requirement == domain.StoreSpecialty {
			specialtyItems = append(specialtyItems, item)
		}
	}

	for _, name := range unavailable {
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"%q has no candidates in any store; marked unavailable", name))
	}

	primary := p.rules.PrimaryStore()
	primaryGroup := domain.StoreGroup{
		StoreName:        primary.Name,
		StoreType:        primary.Type,
		IsPrimary:        true,
		DeliveryEstimate: primary.DeliveryEstimate[urgency],
	}
	var specialtyGroup *domain.StoreGroup

	switch len(specialtyItems) {
	case 0:
		// nothing to do
	case 1:
		result.AppliedOneItemRule = true
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"1-item efficiency rule: only %q strictly requires a specialty store; merging it into %s instead of opening a second store (specialty sourcing traded for a single trip)",
			specialtyItems[0].name, primary.Name))
	default:
		specialty := p.rules.SpecialtyStoreFor(urgency)
		specialtyGroup = &domain.StoreGroup{
			StoreName:        specialty.Name,
			StoreType:        domain.StoreSpecialty,
			DeliveryEstimate: specialty.DeliveryEstimate[urgency],
		}
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"%d ingredients strictly require a specialty store; opening %s (%s)",
			len(specialtyItems), specialty.Name, specialtyChoiceReason(urgency)))
	}

	// The primary store opens only when something actually needs it: a
	// primary-required item, a merged specialty single, or a list with no
	// specialty group at all.
	primaryOpen := result.AppliedOneItemRule || specialtyGroup == nil
	for _, item := range items {
		if item.requirement == domain.StorePrimary {
			primaryOpen = true
			break
		}
	}

	for _, item := range items {
		switch {
		case item.requirement == domain.StoreSpecialty && specialtyGroup != nil:
			specialtyGroup.Ingredients = append(specialtyGroup.Ingredients, item.name)
		case item.requirement == domain.StoreBoth:
			// "both" joins a store that is already open; it never forces an
			// extra store by itself.
			target := &primaryGroup
			if !primaryOpen && specialtyGroup != nil {
				target = specialtyGroup
			}
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"%q can come from either store type; assigning to already-selected %s", item.name, target.StoreName))
			target.Ingredients = append(target.Ingredients, item.name)
		default:
			primaryGroup.Ingredients = append(primaryGroup.Ingredients, item.name)
		}
	}

	if len(primaryGroup.Ingredients) > 0 {
		primaryGroup.Count = len(primaryGroup.Ingredients)
		result.Groups = append(result.Groups, primaryGroup)
	}
	if specialtyGroup != nil && len(specialtyGroup.Ingredients) > 0 {
		specialtyGroup.Count = len(specialtyGroup.Ingredients)
		result.Groups = append(result.Groups, *specialtyGroup)
	}

	result.TotalStoresNeeded = len(result.Groups)
	result.Reasoning = append(result.Reasoning, fmt.Sprintf(
		"final split: %d store(s) needed, %d ingredient(s) unavailable",
		result.TotalStoresNeeded, len(result.UnavailableIngredients)))

	return result
}

func specialtyChoiceReason(urgency domain.Urgency) string {
	if urgency == domain.UrgencyUrgent {
		return "urgent request favors the faster-delivery specialty store"
	}
	return "planning request favors the curated specialty store"
}
