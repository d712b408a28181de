package catalog

import (
	"testing"

	"voicelens/internal/features/entitlement"
)

func TestUnlocked(t *testing.T) {
	tests := []struct {
		name      string
		free      bool
		subbed    bool
		purchased bool
		want      bool
	}{
		{"nothing", false, false, false, false},
		{"purchased only", false, false, true, true},
		{"subscribed only", false, true, false, true},
		{"subscribed and purchased", false, true, true, true},
		{"free report", true, false, false, true},
		{"free and purchased", true, false, true, true},
		{"free and subscribed", true, true, false, true},
		{"everything", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := Definition{ID: "workload_analysis", Free: tt.free}
			ent := entitlement.Entitlement{
				Subscribed:       tt.subbed,
				PurchasedReports: map[string]bool{},
			}
			if tt.purchased {
				ent.PurchasedReports[def.ID] = true
			}

			if got := Unlocked(def, ent); got != tt.want {
				t.Errorf("Unlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnlockedIsStable(t *testing.T) {
	def := Definition{ID: "burnout_risk"}
	ent := entitlement.Entitlement{
		Subscribed:       false,
		PurchasedReports: map[string]bool{"burnout_risk": true},
	}

	first := Unlocked(def, ent)
	for i := 0; i < 10; i++ {
		if got := Unlocked(def, ent); got != first {
			t.Fatalf("Unlocked() changed answer on call %d: %v -> %v", i+1, first, got)
		}
	}
}

func TestUnlockedPurchaseDoesNotLeakAcrossReports(t *testing.T) {
	ent := entitlement.Entitlement{
		Subscribed:       false,
		PurchasedReports: map[string]bool{"workload_analysis": true},
	}

	if !Unlocked(Definition{ID: "workload_analysis"}, ent) {
		t.Error("purchased report should be unlocked")
	}
	if Unlocked(Definition{ID: "burnout_risk"}, ent) {
		t.Error("purchase of one report must not unlock another")
	}
}

func TestDefinitionsOrderAndShape(t *testing.T) {
	defs := Definitions()

	if len(defs) != 10 {
		t.Fatalf("Definitions() returned %d entries, want 10", len(defs))
	}
	if defs[0].ID != ReportIntro {
		t.Errorf("first report = %q, want %q", defs[0].ID, ReportIntro)
	}
	if !defs[0].Free {
		t.Error("intro report must be free")
	}
	if defs[0].Strategy != StrategyStructured {
		t.Errorf("intro strategy = %q, want %q", defs[0].Strategy, StrategyStructured)
	}

	for _, def := range defs[1:] {
		if def.Free {
			t.Errorf("report %q should not be free", def.ID)
		}
		if def.Strategy != StrategyDeferred {
			t.Errorf("report %q strategy = %q, want %q", def.ID, def.Strategy, StrategyDeferred)
		}
	}

	// Two calls must agree on order
	again := Definitions()
	for i := range defs {
		if defs[i].ID != again[i].ID {
			t.Fatalf("catalog order changed between calls at index %d", i)
		}
	}
}

func TestDefinitionsReturnsCopy(t *testing.T) {
	defs := Definitions()
	defs[0].Title = "mutated"

	if Definitions()[0].Title == "mutated" {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}

func TestFind(t *testing.T) {
	if def, ok := Find("retention_strategy"); !ok || def.ID != "retention_strategy" {
		t.Errorf("Find(retention_strategy) = %+v, %v", def, ok)
	}
	if _, ok := Find("no_such_report"); ok {
		t.Error("Find() found a report that does not exist")
	}
}
