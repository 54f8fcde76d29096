package usecase

import "github.com/mealcart/backend/internal/domain"

// EWGTier classifies how much pesticide risk pushes an ingredient toward
// organic sourcing.
type EWGTier string

const (
	EWGRequiresOrganic EWGTier = "requires_organic"
	EWGBeneficial      EWGTier = "beneficial"
	EWGOptional        EWGTier = "optional"
)

// FormConstraint holds include/exclude keyword lists for one requested form
// of a category. An empty Form applies to every request for the category.
type FormConstraint struct {
	Form    string
	Include []string
	Exclude []string
}

// PackagingRule is one (keyword, score) pair; packaging inference walks the
// rule list top to bottom and the first match wins.
type PackagingRule struct {
	Keyword string
	Score   float64
}

// ClassificationRule is one (predicate, result) pair for store-requirement
// classification, evaluated top to bottom.
type ClassificationRule struct {
	Name       string
	Categories map[string]bool
	Result     domain.StoreType
}

// StoreInfo describes one known store: priority for tie-breaks, delivery
// estimates per urgency, and a logistics score per urgency used by the
// delivery scoring component.
type StoreInfo struct {
	ID               string
	Name             string
	Type             domain.StoreType
	Priority         int
	Curated          bool
	DeliveryEstimate map[domain.Urgency]string
	DeliveryScore    map[domain.Urgency]float64
}

// Rules is an immutable snapshot of every static rule table the engine
// consults. Built once at process start; a reload produces a new snapshot,
// never an in-place edit.
type Rules struct {
	synonyms            map[string]string
	qualifierTokens     map[string]bool
	formConstraints     map[string][]FormConstraint
	ewgTiers            map[string]EWGTier
	packagingRules      []PackagingRule
	packagingNeutral    float64
	privateLabels       map[string]string
	brandBlacklists     map[string]map[string]bool
	classificationRules []ClassificationRule
	stores              map[string]StoreInfo
	storeOrder          []string
	primaryStoreID      string
}

// Store IDs known to the default rule set.
const (
	StoreIDWalmart       = "walmart"
	StoreIDPatelBrothers = "patel-brothers"
	StoreIDWeee          = "weee"
)

// DefaultRules builds the default immutable rule snapshot.
func DefaultRules() *Rules {
	return &Rules{
		synonyms:            defaultSynonyms(),
		qualifierTokens:     defaultQualifierTokens(),
		formConstraints:     defaultFormConstraints(),
		ewgTiers:            defaultEWGTiers(),
		packagingRules:      defaultPackagingRules(),
		packagingNeutral:    2.5,
		privateLabels:       defaultPrivateLabels(),
		brandBlacklists:     defaultBrandBlacklists(),
		classificationRules: defaultClassificationRules(),
		stores:              defaultStores(),
		storeOrder:          []string{StoreIDWalmart, StoreIDPatelBrothers, StoreIDWeee},
		primaryStoreID:      StoreIDWalmart,
	}
}

// defaultSynonyms maps common ingredient phrasings to a canonical category key.
func defaultSynonyms() map[string]string {
	return map[string]string{
		"chicken thighs":   "chicken",
		"chicken thigh":    "chicken",
		"chicken breast":   "chicken",
		"chicken breasts":  "chicken",
		"chicken legs":     "chicken",
		"whole chicken":    "chicken",
		"scallions":        "green onion",
		"scallion":         "green onion",
		"spring onion":     "green onion",
		"coriander leaves": "cilantro",
		"coriander leaf":   "cilantro",
		"cumin seeds":      "cumin",
		"cumin seed":       "cumin",
		"cumin powder":     "cumin",
		"coriander seeds":  "coriander",
		"coriander powder": "coriander",
		"turmeric powder":  "turmeric",
		"haldi":            "turmeric",
		"red onion":        "onion",
		"yellow onion":     "onion",
		"white onion":      "onion",
		"roma tomatoes":    "tomato",
		"roma tomato":      "tomato",
		"cherry tomatoes":  "tomato",
		"plum tomato":      "tomato",
		"garlic cloves":    "garlic",
		"garlic clove":     "garlic",
		"ginger root":      "ginger",
		"basmati":          "basmati rice",
		"clarified butter": "ghee",
		"garam masala powder": "garam masala",
		"bell peppers":     "bell pepper",
		"capsicum":         "bell pepper",
		"baby spinach":     "spinach",
		"plain yogurt":     "yogurt",
		"greek yogurt":     "yogurt",
		"curd":             "yogurt",
		"heavy cream":      "cream",
		"whipping cream":   "cream",
		"green chilies":    "green chili",
		"green chillies":   "green chili",
		"serrano pepper":   "green chili",
	}
}

// defaultQualifierTokens lists quantity/qualifier words stripped during
// category normalization. Form words stay meaningful to the constraint
// filter, which reads the ingredient's form field, not the stripped name.
func defaultQualifierTokens() map[string]bool {
	return map[string]bool{
		// freshness / preparation
		"fresh": true, "frozen": true, "raw": true, "ripe": true,
		"boneless": true, "skinless": true, "ground": true, "whole": true,
		"dried": true, "chopped": true, "diced": true, "minced": true,
		"sliced": true, "grated": true, "crushed": true,
		// size / grade
		"large": true, "medium": true, "small": true, "baby": true,
		"extra": true, "jumbo": true,
		// quantity noise
		"cup": true, "cups": true, "tbsp": true, "tsp": true,
		"oz": true, "lb": true, "lbs": true, "g": true, "kg": true,
		"bunch": true, "bunches": true, "cloves": true, "piece": true,
		"pieces": true, "can": true, "cans": true, "of": true,
		"a": true, "an": true, "the": true, "some": true,
		"organic": true, "optional": true, "to": true, "taste": true,
	}
}

// defaultFormConstraints holds per-category include/exclude keyword lists.
// Categories absent here admit all forms.
func defaultFormConstraints() map[string][]FormConstraint {
	return map[string][]FormConstraint{
		"cumin": {
			{Form: "seeds", Include: []string{"seed", "whole"}, Exclude: []string{"kalonji", "ground", "powder"}},
			{Form: "ground", Include: []string{"ground", "powder"}, Exclude: []string{"kalonji", "seed"}},
			{Form: "", Exclude: []string{"kalonji"}},
		},
		"ginger": {
			{Form: "fresh", Exclude: []string{"powder", "ground", "dried", "candied", "pickled"}},
			{Form: "ground", Include: []string{"ground", "powder"}},
		},
		"coriander": {
			{Form: "seeds", Include: []string{"seed", "whole"}, Exclude: []string{"ground", "powder", "leaves"}},
			{Form: "ground", Include: []string{"ground", "powder"}, Exclude: []string{"seed", "leaves"}},
		},
		"garlic": {
			{Form: "fresh", Exclude: []string{"powder", "granulated", "minced jar", "dried"}},
		},
		"chicken": {
			{Form: "boneless", Include: []string{"boneless"}},
			{Form: "whole", Exclude: []string{"ground", "boneless", "wings", "liver"}},
			{Form: "ground", Include: []string{"ground"}},
		},
		"tomato": {
			{Form: "fresh", Exclude: []string{"canned", "paste", "puree", "sauce", "sun-dried", "crushed"}},
			{Form: "canned", Include: []string{"canned", "can"}},
		},
		"green chili": {
			{Form: "fresh", Exclude: []string{"powder", "dried", "flakes", "sauce"}},
		},
	}
}

// defaultEWGTiers tags produce categories by pesticide-risk tier.
func defaultEWGTiers() map[string]EWGTier {
	return map[string]EWGTier{
		// dirty-dozen style: organic strongly preferred
		"spinach":     EWGRequiresOrganic,
		"strawberry":  EWGRequiresOrganic,
		"kale":        EWGRequiresOrganic,
		"apple":       EWGRequiresOrganic,
		"grape":       EWGRequiresOrganic,
		"peach":       EWGRequiresOrganic,
		"tomato":      EWGRequiresOrganic,
		"celery":      EWGRequiresOrganic,
		"potato":      EWGRequiresOrganic,
		"bell pepper": EWGRequiresOrganic,
		"green chili": EWGRequiresOrganic,
		// beneficial: organic nice to have
		"cilantro":    EWGBeneficial,
		"green onion": EWGBeneficial,
		"ginger":      EWGBeneficial,
		"yogurt":      EWGBeneficial,
		"chicken":     EWGBeneficial,
		// everything else defaults to EWGOptional
	}
}

// defaultPackagingRules maps packaging text to a sustainability score,
// first match wins. Unknown or missing packaging gets the neutral score.
func defaultPackagingRules() []PackagingRule {
	return []PackagingRule{
		{Keyword: "glass", Score: 5.0},
		{Keyword: "metal", Score: 4.5},
		{Keyword: "tin", Score: 4.5},
		{Keyword: "aluminum", Score: 4.5},
		{Keyword: "paper", Score: 4.0},
		{Keyword: "cardboard", Score: 4.0},
		{Keyword: "carton", Score: 3.5},
		{Keyword: "compostable", Score: 4.0},
		{Keyword: "loose", Score: 4.0},
		{Keyword: "none", Score: 4.0},
		{Keyword: "pouch", Score: 2.0},
		{Keyword: "shrink", Score: 1.0},
		{Keyword: "plastic", Score: 1.0},
		{Keyword: "styrofoam", Score: 0.0},
	}
}

// defaultPrivateLabels binds private-label brands to their exclusive store.
func defaultPrivateLabels() map[string]string {
	return map[string]string{
		"great value": StoreIDWalmart,
		"marketside":  StoreIDWalmart,
		"bettergoods": StoreIDWalmart,
		"swad":        StoreIDPatelBrothers,
	}
}

// defaultBrandBlacklists excludes low-trust brands from specific stores.
func defaultBrandBlacklists() map[string]map[string]bool {
	return map[string]map[string]bool{
		StoreIDPatelBrothers: {
			"spicekart":  true,
			"bulkbazaar": true,
		},
	}
}

// defaultClassificationRules is the ordered store-requirement table:
// fresh perishables need the primary store, ethnic/spice staples need a
// specialty store, everything else can come from either.
func defaultClassificationRules() []ClassificationRule {
	return []ClassificationRule{
		{
			Name:   "fresh perishables",
			Result: domain.StorePrimary,
			Categories: map[string]bool{
				"chicken": true, "beef": true, "fish": true, "shrimp": true,
				"milk": true, "yogurt": true, "cream": true, "butter": true,
				"egg": true, "paneer": true,
				"onion": true, "tomato": true, "garlic": true, "ginger": true,
				"spinach": true, "kale": true, "cilantro": true,
				"green onion": true, "green chili": true, "bell pepper": true,
				"potato": true, "lemon": true, "lime": true,
			},
		},
		{
			Name:   "ethnic & spice staples",
			Result: domain.StoreSpecialty,
			Categories: map[string]bool{
				"garam masala": true, "turmeric": true, "cumin": true,
				"coriander": true, "cardamom": true, "clove": true,
				"cinnamon": true, "mustard seeds": true, "fenugreek": true,
				"asafoetida": true, "curry leaves": true, "ghee": true,
				"basmati rice": true, "red lentils": true, "chickpea flour": true,
				"tamarind": true, "saffron": true,
			},
		},
		{
			Name:   "common pantry",
			Result: domain.StoreBoth,
			Categories: map[string]bool{
				"salt": true, "sugar": true, "flour": true, "rice": true,
				"oil": true, "olive oil": true, "vegetable oil": true,
				"black pepper": true, "honey": true, "vinegar": true,
			},
		},
	}
}

// defaultStores describes the known store roster.
func defaultStores() map[string]StoreInfo {
	return map[string]StoreInfo{
		StoreIDWalmart: {
			ID:       StoreIDWalmart,
			Name:     "Walmart",
			Type:     domain.StorePrimary,
			Priority: 1,
			DeliveryEstimate: map[domain.Urgency]string{
				domain.UrgencyPlanning: "1-2 days",
				domain.UrgencyUrgent:   "same day",
			},
			DeliveryScore: map[domain.Urgency]float64{
				domain.UrgencyPlanning: 1.0,
				domain.UrgencyUrgent:   2.0,
			},
		},
		StoreIDPatelBrothers: {
			ID:       StoreIDPatelBrothers,
			Name:     "Patel Brothers",
			Type:     domain.StoreSpecialty,
			Priority: 2,
			Curated:  true,
			DeliveryEstimate: map[domain.Urgency]string{
				domain.UrgencyPlanning: "2-3 days",
				domain.UrgencyUrgent:   "2-3 days",
			},
			DeliveryScore: map[domain.Urgency]float64{
				domain.UrgencyPlanning: 1.5,
				domain.UrgencyUrgent:   0.0,
			},
		},
		StoreIDWeee: {
			ID:       StoreIDWeee,
			Name:     "Weee!",
			Type:     domain.StoreSpecialty,
			Priority: 3,
			DeliveryEstimate: map[domain.Urgency]string{
				domain.UrgencyPlanning: "1-2 days",
				domain.UrgencyUrgent:   "next day",
			},
			DeliveryScore: map[domain.Urgency]float64{
				domain.UrgencyPlanning: 1.0,
				domain.UrgencyUrgent:   1.5,
			},
		},
	}
}

// Store returns the StoreInfo for an ID, with a zero value for unknown IDs.
func (r *Rules) Store(id string) (StoreInfo, bool) {
	info, ok := r.stores[id]
	return info, ok
}

// PrimaryStore returns the configured primary store.
func (r *Rules) PrimaryStore() StoreInfo {
	return r.stores[r.primaryStoreID]
}

// StorePriority returns the tie-break priority for a store ID; unknown
// stores sort last.
func (r *Rules) StorePriority(id string) int {
	if info, ok := r.stores[id]; ok {
		return info.Priority
	}
	return 1 << 20
}

// EWGTierFor returns the pesticide-risk tier for a category key.
func (r *Rules) EWGTierFor(category string) EWGTier {
	if tier, ok := r.ewgTiers[category]; ok {
		return tier
	}
	return EWGOptional
}

// ConstraintFor returns the form constraint matching the requested form for
// a category, falling back to the category's any-form constraint. Returns
// nil when the category has no constraints at all.
func (r *Rules) ConstraintFor(category, form string) *FormConstraint {
	constraints, ok := r.formConstraints[category]
	if !ok {
		return nil
	}
	var fallback *FormConstraint
	for i := range constraints {
		c := &constraints[i]
		if c.Form == form && form != "" {
			return c
		}
		if c.Form == "" && fallback == nil {
			fallback = c
		}
	}
	return fallback
}

// HasFormConstraints reports whether a category defines any form rules.
func (r *Rules) HasFormConstraints(category string) bool {
	_, ok := r.formConstraints[category]
	return ok
}

// PrivateLabelStore returns the exclusive store ID for a private-label
// brand, or "" when the brand is not store-bound.
func (r *Rules) PrivateLabelStore(brand string) string {
	return r.privateLabels[normalizeToken(brand)]
}

// BrandBlacklisted reports whether a brand is blacklisted at a store.
func (r *Rules) BrandBlacklisted(storeID, brand string) bool {
	return r.brandBlacklists[storeID][normalizeToken(brand)]
}

// ClassifyStore walks the ordered classification rules top to bottom and
// returns the first match plus the rule name. Categories matching no rule
// default to "both" under the default pantry rule.
func (r *Rules) ClassifyStore(category string) (domain.StoreType, string) {
	for _, rule := range r.classificationRules {
		if rule.Categories[category] {
			return rule.Result, rule.Name
		}
	}
	return domain.StoreBoth, "default pantry"
}

// PackagingScore maps packaging text to a sustainability score via the
// ordered rule list; first match wins, unknown text scores neutral.
func (r *Rules) PackagingScore(packaging string) float64 {
	text := normalizeToken(packaging)
	if text == "" {
		return r.packagingNeutral
	}
	for _, rule := range r.packagingRules {
		if containsWord(text, rule.Keyword) {
			return rule.Score
		}
	}
	return r.packagingNeutral
}

// PackagingNeutral exposes the neutral packaging score used as the zero
// point of the packaging component.
func (r *Rules) PackagingNeutral() float64 {
	return r.packagingNeutral
}

// DeliveryScore returns the logistics-fit score of a store for an urgency.
func (r *Rules) DeliveryScore(storeID string, urgency domain.Urgency) float64 {
	info, ok := r.stores[storeID]
	if !ok {
		return 0
	}
	return info.DeliveryScore[urgency]
}

// SpecialtyStoreFor picks the specialty store for the requested urgency:
// planning favors the curated, slower source; urgent favors the
// faster-delivery alternative.
func (r *Rules) SpecialtyStoreFor(urgency domain.Urgency) StoreInfo {
	var best StoreInfo
	var bestScore = -1.0
	for _, id := range r.storeOrder {
		info := r.stores[id]
		if info.Type != domain.StoreSpecialty {
			continue
		}
		score := info.DeliveryScore[urgency]
		if urgency == domain.UrgencyPlanning && info.Curated {
			score += 1.0
		}
		if score > bestScore {
			bestScore = score
			best = info
		}
	}
	return best
}
