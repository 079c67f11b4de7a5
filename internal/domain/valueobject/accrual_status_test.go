package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestbank/accrual-service/internal/domain/valueobject"
)

func TestNewAccrualStatus(t *testing.T) {
	t.Run("accepts known statuses", func(t *testing.T) {
		for _, raw := range []string{"DRAFT", "SUBMITTED", "CANCELLED"} {
			s, err := valueobject.NewAccrualStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, s.String())
			assert.False(t, s.IsZero())
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		_, err := valueobject.NewAccrualStatus("PENDING")
		assert.Error(t, err)

		_, err = valueobject.NewAccrualStatus("draft")
		assert.Error(t, err, "statuses are case sensitive")
	})

	t.Run("zero value", func(t *testing.T) {
		var s valueobject.AccrualStatus
		assert.True(t, s.IsZero())
		assert.False(t, s.Equal(valueobject.AccrualStatusDraft))
	})
}

func TestNewLoanClassification(t *testing.T) {
	demand, err := valueobject.NewLoanClassification("DEMAND")
	require.NoError(t, err)
	assert.True(t, demand.Equal(valueobject.LoanClassificationDemand))

	_, err = valueobject.NewLoanClassification("REVOLVING")
	assert.Error(t, err)
}

func TestPostingDefaults_CostCenterFor(t *testing.T) {
	defaults := valueobject.NewPostingDefaults(map[string]string{
		"Crest Bank":    "Main - CB",
		"Crest Leasing": "Main - CL",
	}, "Head Office")

	assert.Equal(t, "Main - CB", defaults.CostCenterFor("Crest Bank"))
	assert.Equal(t, "Head Office", defaults.CostCenterFor("Unknown Co"))
}

func TestPostingDefaults_CopiesInput(t *testing.T) {
	src := map[string]string{"Crest Bank": "Main - CB"}
	defaults := valueobject.NewPostingDefaults(src, "Head Office")

	src["Crest Bank"] = "Tampered"

	assert.Equal(t, "Main - CB", defaults.CostCenterFor("Crest Bank"))
}
