package domain

import "time"

// Selection is the per-ingredient outcome: the winning product, how much of
// it to buy, and the full decision trace behind the pick.
type Selection struct {
	Ingredient       Ingredient       `json:"ingredient"`
	Product          ProductCandidate `json:"product"`
	PackagesToBuy    int              `json:"packagesToBuy"`
	PurchaseQuantity Measure          `json:"purchaseQuantity"`
	ReasonLine       string           `json:"reasonLine"`
	Trace            DecisionTrace    `json:"trace"`
}

// StoreGroup is one store visit in the final split: which store, which
// ingredients, and the delivery estimate for the requested urgency.
type StoreGroup struct {
	StoreName        string    `json:"storeName"`
	StoreType        StoreType `json:"storeType"`
	IsPrimary        bool      `json:"isPrimary"`
	DeliveryEstimate string    `json:"deliveryEstimate"`
	Ingredients      []string  `json:"ingredients"`
	Count            int       `json:"count"`
}

// StoreSplitResult partitions the ingredient list into the minimum set of
// stores, with an ordered reasoning trace auditable line by line.
type StoreSplitResult struct {
	Groups                 []StoreGroup `json:"stores"`
	UnavailableIngredients []string     `json:"unavailableIngredients"`
	TotalStoresNeeded      int          `json:"totalStoresNeeded"`
	AppliedOneItemRule     bool         `json:"appliedOneItemRule"`
	Reasoning              []string     `json:"reasoning"`
}

// ShoppingPlan is the whole-run output: per-ingredient selections, traces
// for unavailable ingredients, and the store split. Plain nested records,
// safe to serialize without special-casing.
type ShoppingPlan struct {
	PlanID      string           `json:"planId"`
	Urgency     Urgency          `json:"urgency"`
	Selections  []Selection      `json:"selections"`
	Unavailable []DecisionTrace  `json:"unavailable,omitempty"`
	Split       StoreSplitResult `json:"split"`
	Source      string           `json:"source"` // "engine" or "cache"
	CreatedAt   time.Time        `json:"createdAt"`
}
