package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testTimestamps() (time.Time, time.Time) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return created, created.Add(time.Hour)
}

// TestUserBuilderBasic validates user construction with required fields.
func TestUserBuilderBasic(t *testing.T) {
	created, updated := testTimestamps()

	user, err := NewUserBuilder().
		ID("user-1").
		Email("jill@example.com").
		Name("Jill").
		Active(true).
		Created(created).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "jill@example.com", user.Email)
	assert.True(t, user.IsActive())
	assert.Empty(t, user.Roles)
}

// TestUserBuilderMissingFields validates each required field is enforced.
func TestUserBuilderMissingFields(t *testing.T) {
	created, updated := testTimestamps()

	_, err := NewUserBuilder().
		Email("jill@example.com").
		Name("Jill").
		Created(created).
		Updated(updated).
		Build()
	field, ok := MissingField(err)
	assert.True(t, ok)
	assert.Equal(t, "id", field)

	_, err = NewUserBuilder().
		ID("user-1").
		Name("Jill").
		Created(created).
		Updated(updated).
		Build()
	field, _ = MissingField(err)
	assert.Equal(t, "email", field)
}

// TestUserBuilderZeroValueCounts validates that setting a field to its zero
// value still satisfies the required check. Required means "was set", not
// "is non-zero".
func TestUserBuilderZeroValueCounts(t *testing.T) {
	_, updated := testTimestamps()

	user, err := NewUserBuilder().
		ID("user-1").
		Email("").
		Name("Jill").
		Created(time.Time{}).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "", user.Email)
}

// TestUserBuilderRejectsDuplicateBindings validates builder-time enforcement
// of the one-role-per-scope rule.
func TestUserBuilderRejectsDuplicateBindings(t *testing.T) {
	created, updated := testTimestamps()

	_, err := NewUserBuilder().
		ID("user-1").
		Email("jill@example.com").
		Name("Jill").
		Created(created).
		Updated(updated).
		Roles(
			Binding{Role: RoleMember, Scope: CompanyScope("co-1")},
			Binding{Role: RoleAdmin, Scope: CompanyScope("co-1")},
		).
		Build()

	assert.Error(t, err)
	assert.True(t, IsDuplicateAssignment(err))
}

// TestUserJSONOmitsEmptyCollections validates the serialization contract:
// empty role lists and absent optional fields produce no output, and decoding
// their absence yields the canonical empty state.
func TestUserJSONOmitsEmptyCollections(t *testing.T) {
	created, updated := testTimestamps()

	user, err := NewUserBuilder().
		ID("user-1").
		Email("jill@example.com").
		Name("Jill").
		Active(true).
		Created(created).
		Updated(updated).
		Build()
	assert.NoError(t, err)

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), `"roles"`)
	assert.NotContains(t, string(data), `"deleted"`)

	var decoded User
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.Roles)
	assert.Nil(t, decoded.Deleted)
	assert.Equal(t, user.ID, decoded.ID)
	assert.Equal(t, user.Email, decoded.Email)
	assert.True(t, decoded.Created.Equal(user.Created))
}

// TestUserJSONRoundTripWithRoles validates lossless encode/decode with
// populated optional fields.
func TestUserJSONRoundTripWithRoles(t *testing.T) {
	created, updated := testTimestamps()

	user, err := NewUserBuilder().
		ID("user-1").
		Email("jill@example.com").
		Name("Jill").
		Active(true).
		Created(created).
		Updated(updated).
		Roles(
			Binding{Role: RoleUser, Scope: GlobalScope()},
			Binding{Role: RoleMember, Scope: CompanyScope("co-1")},
		).
		Build()
	assert.NoError(t, err)

	data, err := json.Marshal(user)
	assert.NoError(t, err)

	var decoded User
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, user.Roles, decoded.Roles)
}

// TestCompanyBuilderBasic validates company construction and type values.
func TestCompanyBuilderBasic(t *testing.T) {
	created, updated := testTimestamps()

	company, err := NewCompanyBuilder().
		ID("co-1").
		Type(CompanySyndicate).
		Email("info@widgets.example").
		Name("Widgets Inc").
		Active(true).
		Created(created).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, CompanySyndicate, company.Type)
	assert.Empty(t, company.Regions)

	_, err = NewCompanyBuilder().
		ID("co-2").
		Email("info@widgets.example").
		Name("Widgets Inc").
		Created(created).
		Updated(updated).
		Build()
	field, _ := MissingField(err)
	assert.Equal(t, "type", field)
}

// TestCompanyLifecycle validates soft delete on a company record.
func TestCompanyLifecycle(t *testing.T) {
	created, updated := testTimestamps()

	company, err := NewCompanyBuilder().
		ID("co-1").
		Type(CompanyPrivate).
		Email("info@widgets.example").
		Name("Widgets Inc").
		Active(true).
		Created(created).
		Updated(updated).
		Build()
	assert.NoError(t, err)
	assert.True(t, company.IsActive())

	deletedAt := updated.Add(time.Hour)
	company.Delete(deletedAt)
	assert.False(t, company.IsActive())
	assert.Equal(t, deletedAt, company.Updated)
}

// TestAccountBuilderBasic validates account construction and ownership.
func TestAccountBuilderBasic(t *testing.T) {
	created, updated := testTimestamps()

	account, err := NewAccountBuilder().
		ID("acct-1").
		Owners("user-1", "user-2").
		Name("checking").
		Balance("100.50").
		Active(true).
		Created(created).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.True(t, account.OwnedBy("user-1"))
	assert.True(t, account.OwnedBy("user-2"))
	assert.False(t, account.OwnedBy("user-3"))
	assert.False(t, account.UBI)
	assert.Nil(t, account.Description)
}

// TestAccountJSONOmitsOptionals validates omitempty on account optionals.
func TestAccountJSONOmitsOptionals(t *testing.T) {
	created, updated := testTimestamps()

	account, err := NewAccountBuilder().
		ID("acct-1").
		Name("checking").
		Balance("0").
		Created(created).
		Updated(updated).
		Build()
	assert.NoError(t, err)

	data, err := json.Marshal(account)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), `"owners"`)
	assert.NotContains(t, string(data), `"description"`)

	withDesc, err := NewAccountBuilder().
		ID("acct-2").
		Name("savings").
		Description("long term").
		Balance("0").
		Created(created).
		Updated(updated).
		Build()
	assert.NoError(t, err)

	data, err = json.Marshal(withDesc)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"description":"long term"`)
}

// TestOccupationBuilderBasic validates occupation construction.
func TestOccupationBuilderBasic(t *testing.T) {
	created, updated := testTimestamps()

	occupation, err := NewOccupationBuilder().
		ID("occ-1").
		Label("machinist").
		Active(true).
		Created(created).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "machinist", occupation.Label)
	assert.Nil(t, occupation.Description)

	_, err = NewOccupationBuilder().
		ID("occ-2").
		Created(created).
		Updated(updated).
		Build()
	field, _ := MissingField(err)
	assert.Equal(t, "label", field)
}

// TestCurrencyBuilderBasic validates currency construction, including a
// zero-decimals currency.
func TestCurrencyBuilderBasic(t *testing.T) {
	created, updated := testTimestamps()

	currency, err := NewCurrencyBuilder().
		ID("cur-1").
		Name("credits").
		Decimals(0).
		Active(true).
		Created(created).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, 0, currency.Decimals)

	_, err = NewCurrencyBuilder().
		ID("cur-2").
		Name("credits").
		Created(created).
		Updated(updated).
		Build()
	field, _ := MissingField(err)
	assert.Equal(t, "decimals", field)
}

// TestResourceBuilderBasic validates resource construction with cost maps.
func TestResourceBuilderBasic(t *testing.T) {
	created, updated := testTimestamps()

	resource, err := NewResourceBuilder().
		ID("res-1").
		CompanyID("co-1").
		Costs(map[string]string{"labor": "12.5"}).
		Active(true).
		Created(created).
		Updated(updated).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "12.5", resource.Costs["labor"])

	bare, err := NewResourceBuilder().
		ID("res-2").
		CompanyID("co-1").
		Created(created).
		Updated(updated).
		Build()
	assert.NoError(t, err)

	data, err := json.Marshal(bare)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), `"costs"`)

	var decoded Resource
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.Costs)
}
