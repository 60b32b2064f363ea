package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_UnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("loading customer: %w", NotFound("Customer"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "loading customer: Customer not found", err.Error())

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindConflict, KindOf(Conflict(MsgEmailExists)))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized(MsgInvalidCredentials)))
	assert.Equal(t, KindForbidden, KindOf(Forbidden(MsgInsufficientRole)))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "internal", KindInternal.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, "2024-03", d.MonthKey())

	d, err = ParseDate("2024-03-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		When Date  `json:"when"`
		Opt  *Date `json:"opt"`
	}
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2024-01-31","opt":null}`), &p))
	assert.Equal(t, time.January, p.When.Month())
	assert.Nil(t, p.Opt)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2024-01-31","opt":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"when":20240131}`), &p))
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
	assert.Equal(t, 7, *Ptr(7))
}

func TestRegistrationValidate(t *testing.T) {
	r := Registration{Email: "a@b.co", Password: "longenough", FirstName: "Ada", LastName: "L"}
	assert.NoError(t, r.Validate())

	r.LastName = ""
	err := r.Validate()
	require.Error(t, err)
	assert.Equal(t, "All fields are required", err.Error())

	r.LastName = "L"
	r.Password = "short"
	assert.Error(t, r.Validate())
}

func TestInvoiceIsOverdue(t *testing.T) {
	due, _ := ParseDate("2024-02-01")
	asOf, _ := ParseDate("2024-02-02")

	inv := &Invoice{Status: InvoiceSent, DueDate: &due}
	assert.True(t, inv.IsOverdue(asOf))
	assert.False(t, inv.IsOverdue(due))

	inv.Status = InvoicePaid
	assert.False(t, inv.IsOverdue(asOf))
}

func TestInvoiceDetailNormalize(t *testing.T) {
	d := &InvoiceDetail{Description: "Consulting", Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromFloat(150.5)}
	require.NoError(t, d.Validate())
	d.Normalize()
	assert.True(t, d.LineTotal.Equal(decimal.NewFromInt(1204)))

	explicit := &InvoiceDetail{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(15)}
	explicit.Normalize()
	assert.True(t, explicit.LineTotal.Equal(decimal.NewFromInt(15)))
}

func TestUserHasRole(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace", Role: RoleFinanceManager}
	assert.True(t, u.HasRole(RoleAdmin, RoleFinanceManager))
	assert.False(t, u.HasRole(RoleAdmin))
	assert.Equal(t, "Ada Lovelace", u.FullName())
}
