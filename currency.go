package core

import "time"

// Currency describes a unit of value external systems settle in. Currencies
// are managed by principals holding the bank role.
type Currency struct {
	Model

	// Name is the currency code, e.g. "USD".
	Name string `json:"name" bun:"name,notnull"`

	// Decimals is the number of decimal places the currency subdivides to.
	Decimals int `json:"decimals" bun:"decimals,notnull"`
}

// CurrencyBuilder accumulates fields for one Currency.
type CurrencyBuilder struct {
	currency Currency
	set      map[string]bool
}

// NewCurrencyBuilder creates a new CurrencyBuilder.
func NewCurrencyBuilder() *CurrencyBuilder {
	return &CurrencyBuilder{set: make(map[string]bool)}
}

// ID sets the currency's identifier.
func (b *CurrencyBuilder) ID(id string) *CurrencyBuilder {
	b.currency.ID = id
	b.set["id"] = true
	return b
}

// Name sets the currency code.
func (b *CurrencyBuilder) Name(name string) *CurrencyBuilder {
	b.currency.Name = name
	b.set["name"] = true
	return b
}

// Decimals sets the number of decimal places.
func (b *CurrencyBuilder) Decimals(decimals int) *CurrencyBuilder {
	b.currency.Decimals = decimals
	b.set["decimals"] = true
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *CurrencyBuilder) Active(active bool) *CurrencyBuilder {
	b.currency.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *CurrencyBuilder) Created(t time.Time) *CurrencyBuilder {
	b.currency.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *CurrencyBuilder) Updated(t time.Time) *CurrencyBuilder {
	b.currency.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *CurrencyBuilder) Deleted(t time.Time) *CurrencyBuilder {
	b.currency.Deleted = &t
	return b
}

// Build finalizes the currency.
// Fails with ErrMissingField if a required field was never set.
func (b *CurrencyBuilder) Build() (*Currency, error) {
	if err := checkRequired(b.set, "id", "name", "decimals", "created", "updated"); err != nil {
		return nil, err
	}
	currency := b.currency
	return &currency, nil
}
