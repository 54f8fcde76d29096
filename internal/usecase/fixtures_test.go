package usecase

import "github.com/mealcart/backend/internal/domain"

// testCatalog builds a small multi-store snapshot covering the categories
// the engine tests exercise.
func testCatalog() []domain.ProductCandidate {
	return []domain.ProductCandidate{
		// chicken: two walmart listings and one from the specialty side
		{
			ProductID: "wm-chk-1", SourceStoreID: StoreIDWalmart, StoreName: "Walmart",
			Category: "chicken", Brand: "Tyson", Title: "Boneless Skinless Chicken Thighs",
			Price: 8.49, Size: domain.Measure{Value: 32, Unit: "oz"},
			UnitPrice: domain.Measure{Value: 0.27, Unit: "oz"},
			Packaging: "plastic tray", StoreType: domain.StorePrimary,
		},
		{
			ProductID: "wm-chk-2", SourceStoreID: StoreIDWalmart, StoreName: "Walmart",
			Category: "chicken", Brand: "Great Value", Title: "Chicken Thighs Bone-In Family Pack",
			Price: 6.99, Size: domain.Measure{Value: 48, Unit: "oz"},
			UnitPrice: domain.Measure{Value: 0.15, Unit: "oz"},
			Packaging: "plastic wrap", StoreType: domain.StorePrimary,
		},
		{
			ProductID: "wee-chk-1", SourceStoreID: StoreIDWeee, StoreName: "Weee!",
			Category: "chicken", Brand: "Mary's", Title: "Organic Boneless Chicken Thighs",
			Price: 11.99, Size: domain.Measure{Value: 24, Unit: "oz"},
			UnitPrice: domain.Measure{Value: 0.50, Unit: "oz"},
			Organic:   true, Packaging: "paper wrap", StoreType: domain.StoreSpecialty,
		},

		// onion: plain walmart produce
		{
			ProductID: "wm-oni-1", SourceStoreID: StoreIDWalmart, StoreName: "Walmart",
			Category: "onion", Title: "Yellow Onions 3 lb Bag",
			Price: 2.48, Size: domain.Measure{Value: 48, Unit: "oz"},
			Packaging: "mesh bag", StoreType: domain.StorePrimary,
		},

		// tomato: organic and conventional, EWG requires-organic category
		{
			ProductID: "wm-tom-1", SourceStoreID: StoreIDWalmart, StoreName: "Walmart",
			Category: "tomato", Title: "Roma Tomatoes",
			Price: 1.98, Size: domain.Measure{Value: 16, Unit: "oz"},
			Packaging: "loose", StoreType: domain.StorePrimary,
		},
		{
			ProductID: "wm-tom-2", SourceStoreID: StoreIDWalmart, StoreName: "Walmart",
			Category: "tomato", Brand: "Marketside", Title: "Organic Roma Tomatoes",
			Price: 3.49, Size: domain.Measure{Value: 16, Unit: "oz"},
			Organic:   true, Packaging: "cardboard tray", StoreType: domain.StorePrimary,
		},

		// garam masala: specialty staple, including a private-label listing
		// that leaked into the wrong store partition
		{
			ProductID: "pb-gm-1", SourceStoreID: StoreIDPatelBrothers, StoreName: "Patel Brothers",
			Category: "garam masala", Brand: "Swad", Title: "Garam Masala Ground Spice Blend",
			Price: 3.99, Size: domain.Measure{Value: 7, Unit: "oz"},
			Packaging: "glass jar", StoreType: domain.StoreSpecialty,
		},
		{
			ProductID: "wee-gm-1", SourceStoreID: StoreIDWeee, StoreName: "Weee!",
			Category: "garam masala", Brand: "Rani", Title: "Garam Masala Powder",
			Price: 5.49, Size: domain.Measure{Value: 8, Unit: "oz"},
			Packaging: "plastic pouch", StoreType: domain.StoreSpecialty,
		},
		{
			ProductID: "wm-gm-1", SourceStoreID: StoreIDWalmart, StoreName: "Walmart",
			Category: "garam masala", Brand: "Swad", Title: "Swad Garam Masala",
			Price: 4.29, Size: domain.Measure{Value: 7, Unit: "oz"},
			Packaging: "plastic pouch", StoreType: domain.StoreBoth,
		},

		// cumin: form constraints apply (seeds vs kalonji vs ground)
		{
			ProductID: "pb-cum-1", SourceStoreID: StoreIDPatelBrothers, StoreName: "Patel Brothers",
			Category: "cumin", Brand: "Deep", Title: "Cumin Seeds Whole",
			Price: 2.99, Size: domain.Measure{Value: 7, Unit: "oz"},
			Packaging: "plastic pouch", StoreType: domain.StoreSpecialty,
		},
		{
			ProductID: "pb-cum-2", SourceStoreID: StoreIDPatelBrothers, StoreName: "Patel Brothers",
			Category: "cumin", Brand: "Deep", Title: "Kalonji Seeds",
			Price: 2.49, Size: domain.Measure{Value: 7, Unit: "oz"},
			Packaging: "plastic pouch", StoreType: domain.StoreSpecialty,
		},
		{
			ProductID: "pb-cum-3", SourceStoreID: StoreIDPatelBrothers, StoreName: "Patel Brothers",
			Category: "cumin", Brand: "SpiceKart", Title: "Cumin Seeds Premium",
			Price: 1.99, Size: domain.Measure{Value: 7, Unit: "oz"},
			Packaging: "plastic pouch", StoreType: domain.StoreSpecialty,
		},
	}
}

func testIndex() *CatalogIndex {
	return NewCatalogIndex(DefaultRules(), testCatalog())
}
