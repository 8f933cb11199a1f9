package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountsBuilder_KeepsInsertionOrder(t *testing.T) {
	var b AmountsBuilder[string]
	b.Add("Rent", decimal.NewFromInt(1000))
	b.Add("Food", decimal.NewFromInt(20))
	b.Add("Rent", decimal.NewFromInt(5))

	a := b.Build()

	keys := a.Keys()
	if len(keys) != 2 || keys[0] != "Rent" || keys[1] != "Food" {
		t.Fatalf("Expected keys [Rent Food], got %v", keys)
	}
	if !a.Value("Rent").Equal(decimal.NewFromInt(1005)) {
		t.Errorf("Expected Rent 1005, got %s", a.Value("Rent"))
	}
	if !a.Total().Equal(decimal.NewFromInt(1025)) {
		t.Errorf("Expected total 1025, got %s", a.Total())
	}
}

func TestAmountsBuilder_BuildResets(t *testing.T) {
	var b AmountsBuilder[string]
	b.Add("Food", decimal.NewFromInt(1))
	first := b.Build()
	b.Add("Fuel", decimal.NewFromInt(2))
	second := b.Build()

	if first.Has("Fuel") {
		t.Error("Expected first build to be unaffected by later adds")
	}
	if second.Has("Food") {
		t.Error("Expected second build to start empty")
	}
}

func TestAmounts_WithDoesNotMutateReceiver(t *testing.T) {
	var b AmountsBuilder[string]
	b.Set("Food", decimal.NewFromInt(100))
	b.Set("Fuel", decimal.NewFromInt(50))
	original := b.Build()

	updated := original.With("Food", decimal.NewFromInt(200)).With("Gym", decimal.NewFromInt(30))

	if !original.Value("Food").Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected original Food to stay 100, got %s", original.Value("Food"))
	}
	if original.Has("Gym") {
		t.Error("Expected original to not contain Gym")
	}

	keys := updated.Keys()
	want := []string{"Food", "Fuel", "Gym"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Expected keys %v, got %v", want, keys)
		}
	}
	if !updated.Value("Food").Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected updated Food 200, got %s", updated.Value("Food"))
	}
}

func TestAmounts_ZeroValue(t *testing.T) {
	var a Amounts[int]

	if a.Len() != 0 {
		t.Errorf("Expected empty, got %d keys", a.Len())
	}
	if !a.Value(3).IsZero() {
		t.Error("Expected missing key to read as zero")
	}
	if _, ok := a.Get(3); ok {
		t.Error("Expected Get to report missing key")
	}
	if !a.Equal(Amounts[int]{}) {
		t.Error("Expected zero values to be equal")
	}
}

func TestAmounts_Equal(t *testing.T) {
	var b AmountsBuilder[string]
	b.Set("A", decimal.RequireFromString("1.50"))
	b.Set("B", decimal.NewFromInt(2))
	left := b.Build()

	b.Set("B", decimal.NewFromInt(2))
	b.Set("A", decimal.RequireFromString("1.5"))
	right := b.Build()

	if !left.Equal(right) {
		t.Error("Expected equal amounts regardless of order and scale")
	}
	if left.Equal(right.With("C", decimal.Zero)) {
		t.Error("Expected extra key to break equality")
	}
}
