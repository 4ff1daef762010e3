package validation

import (
	"strings"
	"testing"

	"github.com/crmlite/customers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewCustomer(t *testing.T) {
	v, err := New()
	require.NoError(t, err, "failed to build validator")

	t.Log("valid payload passes")
	{
		err := v.Validate(&model.NewCustomer{
			FirstName: "Alice",
			LastName:  "Johnson",
			Email:     "alice@example.com",
		})
		assert.NoError(t, err)
	}

	t.Log("violations are enumerated per json field")
	{
		longNumber := strings.Repeat("9", 21)
		err := v.Validate(&model.NewCustomer{
			LastName:      "Johnson",
			Email:         "not-an-email",
			ContactNumber: &longNumber,
		})

		var pldErr *PayloadError
		require.ErrorAs(t, err, &pldErr)

		violations := pldErr.Violations()
		assert.Contains(t, violations, "first_name", "missing required field")
		assert.Contains(t, violations, "email", "malformed email")
		assert.Contains(t, violations, "contact_number", "over 20 code points")
	}

	t.Log("well-formed address on an unresolvable domain is rejected")
	{
		err := v.Validate(&model.NewCustomer{
			FirstName: "Alice",
			LastName:  "Johnson",
			Email:     "alice@no-such-host.invalid",
		})

		var pldErr *PayloadError
		require.ErrorAs(t, err, &pldErr)
		assert.Contains(t, pldErr.Violations(), "email")
	}
}

func TestValidatePatchCustomer(t *testing.T) {
	v, err := New()
	require.NoError(t, err, "failed to build validator")

	t.Log("empty patch is valid, absent fields keep their values")
	{
		assert.NoError(t, v.Validate(&model.PatchCustomer{ID: 1}))
	}

	t.Log("present fields are validated as on create")
	{
		tooLong := strings.Repeat("a", 256)
		err := v.Validate(&model.PatchCustomer{ID: 1, FirstName: &tooLong})

		var pldErr *PayloadError
		require.ErrorAs(t, err, &pldErr)
		assert.Contains(t, pldErr.Violations(), "first_name")
	}
}
