package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomes_Err(t *testing.T) {
	boom := errors.New("boom")

	t.Run("no failures", func(t *testing.T) {
		outs := Outcomes{Fatal("card", nil), Advisory("attribute", nil)}
		assert.NoError(t, outs.Err())
		assert.Empty(t, outs.Advisories())
		assert.Nil(t, outs.Warnings())
	})

	t.Run("advisory failures are not fatal", func(t *testing.T) {
		outs := Outcomes{Fatal("card", nil), Advisory("attribute Material", boom)}
		assert.NoError(t, outs.Err())
		require.Len(t, outs.Advisories(), 1)
		assert.Equal(t, []string{"attribute Material: boom"}, outs.Warnings())
	})

	t.Run("fatal failures are joined and unwrap", func(t *testing.T) {
		outs := Outcomes{
			Fatal("header", ErrConcurrencyConflict),
			Fatal("item card", boom),
			Advisory("link", boom),
		}
		err := outs.Err()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConcurrencyConflict)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "header")
		assert.Contains(t, err.Error(), "item card")
	})
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "fatal", SeverityFatal.String())
	assert.Equal(t, "advisory", SeverityAdvisory.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
