package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	ruleSet := DefaultRules()
	require.NotEmpty(t, ruleSet)

	t.Run("rule identifiers are unique", func(t *testing.T) {
		seen := make(map[string]bool, len(ruleSet))
		for _, r := range ruleSet {
			assert.False(t, seen[r.ID], "duplicate rule id %q", r.ID)
			seen[r.ID] = true
		}
	})

	t.Run("names and icons are set", func(t *testing.T) {
		for _, r := range ruleSet {
			assert.NotEmpty(t, r.Name, "rule %q has no name", r.ID)
			assert.NotEmpty(t, r.Icon, "rule %q has no icon", r.ID)
		}
	})

	t.Run("patterns are lowercase", func(t *testing.T) {
		for _, r := range ruleSet {
			for _, p := range r.Patterns {
				assert.Equal(t, strings.ToLower(p), p,
					"rule %q pattern %q must be lowercase", r.ID, p)
			}
		}
	})

	t.Run("fallback rule exists and has no patterns", func(t *testing.T) {
		var found bool
		for _, r := range ruleSet {
			if r.ID == FallbackRuleID {
				found = true
				assert.Empty(t, r.Patterns)
			}
		}
		assert.True(t, found)
	})

	t.Run("includes a credit-direction rule", func(t *testing.T) {
		c := NewClassifier(ruleSet)
		assert.NotNil(t, c.creditRule)
	})
}
