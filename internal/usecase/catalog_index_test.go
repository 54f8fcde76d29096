package usecase

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	idx := testIndex()

	t.Run("direct category match", func(t *testing.T) {
		key, status := idx.Normalize("chicken")
		if key != "chicken" || status != NormDirect {
			t.Errorf("Normalize() = (%q, %s), want (chicken, %s)", key, status, NormDirect)
		}
	})

	t.Run("synonym mapping", func(t *testing.T) {
		key, status := idx.Normalize("chicken thighs")
		if key != "chicken" || status != NormSynonym {
			t.Errorf("Normalize() = (%q, %s), want (chicken, %s)", key, status, NormSynonym)
		}
	})

	t.Run("strips qualifiers before synonym lookup", func(t *testing.T) {
		key, status := idx.Normalize("Boneless Chicken Thighs")
		if key != "chicken" || status != NormSynonym {
			t.Errorf("Normalize() = (%q, %s), want (chicken, %s)", key, status, NormSynonym)
		}
	})

	t.Run("strips quantity prefixes", func(t *testing.T) {
		key, status := idx.Normalize("2 lbs chicken")
		if key != "chicken" || status != NormDirect {
			t.Errorf("Normalize() = (%q, %s), want (chicken, %s)", key, status, NormDirect)
		}
	})

	t.Run("underscores separate words", func(t *testing.T) {
		key, status := idx.Normalize("garam_masala")
		if key != "garam masala" || status != NormDirect {
			t.Errorf("Normalize() = (%q, %s), want (garam masala, %s)", key, status, NormDirect)
		}
	})

	t.Run("singularizes trailing plural", func(t *testing.T) {
		key, status := idx.Normalize("onions")
		if key != "onion" || status != NormDirect {
			t.Errorf("Normalize() = (%q, %s), want (onion, %s)", key, status, NormDirect)
		}
	})

	t.Run("substring fallback against known categories", func(t *testing.T) {
		key, status := idx.Normalize("cumin whole spice")
		if key != "cumin" || status != NormFallback {
			t.Errorf("Normalize() = (%q, %s), want (cumin, %s)", key, status, NormFallback)
		}
	})

	t.Run("ambiguous name reported distinctly", func(t *testing.T) {
		_, status := idx.Normalize("dragonfruit")
		if status != NormAmbiguous {
			t.Errorf("status = %s, want %s", status, NormAmbiguous)
		}
	})
}

func TestRetrieve(t *testing.T) {
	idx := testIndex()

	t.Run("returns all candidates for known category", func(t *testing.T) {
		got := idx.Retrieve("chicken", 25)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
	})

	t.Run("caps at max candidates", func(t *testing.T) {
		got := idx.Retrieve("chicken", 2)
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("catalog-stable order", func(t *testing.T) {
		got := idx.Retrieve("chicken", 25)
		wantIDs := []string{"wm-chk-1", "wm-chk-2", "wee-chk-1"}
		for i, want := range wantIDs {
			if got[i].ProductID != want {
				t.Errorf("got[%d].ProductID = %q, want %q", i, got[i].ProductID, want)
			}
		}
	})

	t.Run("deduplicates by product id", func(t *testing.T) {
		candidates := testCatalog()
		candidates = append(candidates, candidates[0]) // duplicate wm-chk-1
		dup := NewCatalogIndex(DefaultRules(), candidates)
		got := dup.Retrieve("chicken", 25)
		if len(got) != 3 {
			t.Errorf("len = %d, want 3 after dedup", len(got))
		}
	})

	t.Run("unknown category returns empty, never errors", func(t *testing.T) {
		got := idx.Retrieve("dragonfruit", 25)
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("retrieval is idempotent", func(t *testing.T) {
		first := idx.Retrieve("garam masala", 25)
		second := idx.Retrieve("garam masala", 25)
		if !reflect.DeepEqual(first, second) {
			t.Error("two retrievals of an unchanged snapshot differ")
		}
	})
}

func TestStoreSummaries(t *testing.T) {
	idx := testIndex()

	retrieved := idx.Retrieve("chicken", 25)
	counts := CountByStore(retrieved)
	if counts["Walmart"] != 2 || counts["Weee!"] != 1 {
		t.Errorf("CountByStore = %v, want Walmart:2 Weee!:1", counts)
	}

	if idx.Size() != len(testCatalog()) {
		t.Errorf("Size() = %d, want %d", idx.Size(), len(testCatalog()))
	}
}
