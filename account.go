package core

import "time"

// Account holds credits for one or more users. Users own accounts; payroll
// pays into them and transfers move value between them. Balances are opaque
// decimal strings; arithmetic and validation belong to the ledger layer.
type Account struct {
	Model

	// Owners are the user IDs that own this account. Empty while an
	// account is being provisioned.
	Owners []string `json:"owners,omitempty" bun:"owners,type:jsonb"`

	// Name of the account.
	Name string `json:"name" bun:"name,notnull"`

	// Description of what the account is for.
	Description *string `json:"description,omitempty" bun:"description"`

	// Balance is the current balance.
	Balance string `json:"balance" bun:"balance,notnull"`

	// UBI marks basic-income accounts, which have special treatment in the
	// ledger layer.
	UBI bool `json:"ubi" bun:"ubi,notnull"`
}

// OwnedBy returns true if the given user owns this account.
func (a *Account) OwnedBy(userID string) bool {
	for _, owner := range a.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}

// AccountBuilder accumulates fields for one Account.
type AccountBuilder struct {
	account Account
	set     map[string]bool
}

// NewAccountBuilder creates a new AccountBuilder.
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{set: make(map[string]bool)}
}

// ID sets the account's identifier.
func (b *AccountBuilder) ID(id string) *AccountBuilder {
	b.account.ID = id
	b.set["id"] = true
	return b
}

// Owners sets the owning user IDs. Defaults to empty.
func (b *AccountBuilder) Owners(userIDs ...string) *AccountBuilder {
	b.account.Owners = userIDs
	return b
}

// Name sets the account's name.
func (b *AccountBuilder) Name(name string) *AccountBuilder {
	b.account.Name = name
	b.set["name"] = true
	return b
}

// Description sets the account's description. Defaults to absent.
func (b *AccountBuilder) Description(description string) *AccountBuilder {
	b.account.Description = &description
	return b
}

// Balance sets the account's balance.
func (b *AccountBuilder) Balance(balance string) *AccountBuilder {
	b.account.Balance = balance
	b.set["balance"] = true
	return b
}

// UBI marks the account as a basic-income account. Defaults to false.
func (b *AccountBuilder) UBI(ubi bool) *AccountBuilder {
	b.account.UBI = ubi
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *AccountBuilder) Active(active bool) *AccountBuilder {
	b.account.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *AccountBuilder) Created(t time.Time) *AccountBuilder {
	b.account.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *AccountBuilder) Updated(t time.Time) *AccountBuilder {
	b.account.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *AccountBuilder) Deleted(t time.Time) *AccountBuilder {
	b.account.Deleted = &t
	return b
}

// Build finalizes the account.
// Fails with ErrMissingField if a required field was never set.
func (b *AccountBuilder) Build() (*Account, error) {
	if err := checkRequired(b.set, "id", "name", "balance", "created", "updated"); err != nil {
		return nil, err
	}
	account := b.account
	return &account, nil
}
