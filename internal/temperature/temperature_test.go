package temperature

import "testing"

func TestFromDistanceBoundaries(t *testing.T) {
	tests := []struct {
		km   float64
		want Tier
	}{
		{0, Burning},
		{499.9, Burning},
		{500, VeryHot},
		{999.9, VeryHot},
		{1000, Hot},
		{2499.9, Hot},
		{2500, Warm},
		{4999.9, Warm},
		{5000, Cool},
		{7499.9, Cool},
		{7500, Cold},
		{9999.9, Cold},
		{10000, Freezing},
		{20036, Freezing},
	}
	for _, tt := range tests {
		if got := FromDistance(tt.km); got != tt.want {
			t.Errorf("FromDistance(%v) = %q, want %q", tt.km, got, tt.want)
		}
	}
}

func TestFromDistanceMonotonic(t *testing.T) {
	prev := -1
	for km := 0.0; km < 21000; km += 50 {
		rank := Hotness(FromDistance(km))
		if rank < prev {
			t.Fatalf("tier rank decreased at %v km: %d -> %d", km, prev, rank)
		}
		prev = rank
	}
}

func TestColorAndLabelCoverAllTiers(t *testing.T) {
	tiers := []Tier{Burning, VeryHot, Hot, Warm, Cool, Cold, Freezing}
	seen := map[string]bool{}
	for _, tier := range tiers {
		c := Color(tier)
		if c == "" || c == unguessedColor {
			t.Errorf("Color(%q) = %q, want a distinct hex color", tier, c)
		}
		if seen[c] {
			t.Errorf("Color(%q) = %q reused by another tier", tier, c)
		}
		seen[c] = true
		if Label(tier) == "" {
			t.Errorf("Label(%q) is empty", tier)
		}
	}
	if Color(Unguessed) != unguessedColor {
		t.Errorf("Color(Unguessed) = %q, want %q", Color(Unguessed), unguessedColor)
	}
	if Label(Unguessed) != "" {
		t.Errorf("Label(Unguessed) = %q, want empty", Label(Unguessed))
	}
}
