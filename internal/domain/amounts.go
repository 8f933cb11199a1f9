package domain

import "github.com/shopspring/decimal"

// Amounts is an ordered mapping from a key to a decimal amount.
// Keys keep the position of their first insertion. An Amounts value is never
// changed in place: With returns a new value and leaves the receiver intact.
// The zero value is an empty mapping.
type Amounts[K comparable] struct {
	keys   []K
	values map[K]decimal.Decimal
}

// Named views over Amounts used by the engine
type (
	// CategorySummary maps category name to an accumulated amount
	CategorySummary = Amounts[string]
	// MonthlySummary maps calendar month number (1-12) to an accumulated amount
	MonthlySummary = Amounts[int]
	// PeriodSummary maps a "YYYY-MM" period key to an accumulated amount
	PeriodSummary = Amounts[string]
	// Trend maps category name to current-period amount minus prior-period amount
	Trend = Amounts[string]
	// Budget maps category name to its spending limit
	Budget = Amounts[string]
	// BudgetUsage maps a budgeted category to the expense amount spent on it
	BudgetUsage = Amounts[string]
)

// Entry is a single key/amount pair of an Amounts value
type Entry[K comparable] struct {
	Key    K
	Amount decimal.Decimal
}

// Len returns the number of keys
func (a Amounts[K]) Len() int {
	return len(a.keys)
}

// Keys returns the keys in insertion order
func (a Amounts[K]) Keys() []K {
	keys := make([]K, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Entries returns the key/amount pairs in insertion order
func (a Amounts[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], len(a.keys))
	for i, k := range a.keys {
		entries[i] = Entry[K]{Key: k, Amount: a.values[k]}
	}
	return entries
}

// Get returns the amount for key and whether the key is present
func (a Amounts[K]) Get(key K) (decimal.Decimal, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Value returns the amount for key, or zero when the key is absent
func (a Amounts[K]) Value(key K) decimal.Decimal {
	if v, ok := a.values[key]; ok {
		return v
	}
	return decimal.Zero
}

// Has reports whether key is present
func (a Amounts[K]) Has(key K) bool {
	_, ok := a.values[key]
	return ok
}

// Total returns the sum of all amounts
func (a Amounts[K]) Total() decimal.Decimal {
	total := decimal.Zero
	for _, k := range a.keys {
		total = total.Add(a.values[k])
	}
	return total
}

// With returns a copy with key set to amount. An existing key keeps its position.
func (a Amounts[K]) With(key K, amount decimal.Decimal) Amounts[K] {
	next := Amounts[K]{
		keys:   make([]K, len(a.keys), len(a.keys)+1),
		values: make(map[K]decimal.Decimal, len(a.values)+1),
	}
	copy(next.keys, a.keys)
	for k, v := range a.values {
		next.values[k] = v
	}
	if _, ok := next.values[key]; !ok {
		next.keys = append(next.keys, key)
	}
	next.values[key] = amount
	return next
}

// Equal reports whether both values hold the same keys with numerically equal
// amounts. Key order is not compared.
func (a Amounts[K]) Equal(other Amounts[K]) bool {
	if len(a.keys) != len(other.keys) {
		return false
	}
	for k, v := range a.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// AmountsBuilder accumulates amounts in insertion order.
// The zero value is ready to use.
type AmountsBuilder[K comparable] struct {
	a Amounts[K]
}

// Add adds amount to the running total for key
func (b *AmountsBuilder[K]) Add(key K, amount decimal.Decimal) {
	b.Set(key, b.a.Value(key).Add(amount))
}

// Set replaces the amount for key
func (b *AmountsBuilder[K]) Set(key K, amount decimal.Decimal) {
	if b.a.values == nil {
		b.a.values = make(map[K]decimal.Decimal)
	}
	if _, ok := b.a.values[key]; !ok {
		b.a.keys = append(b.a.keys, key)
	}
	b.a.values[key] = amount
}

// Build returns the accumulated value and resets the builder
func (b *AmountsBuilder[K]) Build() Amounts[K] {
	built := b.a
	b.a = Amounts[K]{}
	return built
}
