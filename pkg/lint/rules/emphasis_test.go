package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/config"
)

func boldConfig(style config.BoldStyle) *config.Config {
	cfg := config.NewConfig()
	cfg.Style.Bold = style
	return cfg
}

func TestStrongStyleRule(t *testing.T) {
	t.Parallel()

	input := "**a** and __b__\n"

	t.Run("consistent", func(t *testing.T) {
		t.Parallel()

		got := applyRule(t, NewStrongStyleRule(), input, boldConfig(config.BoldConsistent))
		require.Len(t, got, 1)
		assert.Equal(t, pos(1, 11, 1, 16, 10, 15), got[0].Position)
		assert.Equal(t,
			`Inconsistent bold style. First bold in this file is "asterisk", but this one is "underscore"`,
			got[0].Message)
		assert.Equal(t, []string{
			`Change bold style to "asterisk"`,
			"Alternatively, you can enforce specific bold style via either \"bold\" option " +
				"from the \"[style]\" section in config file or via \"--style-bold\" CLI option",
			"See Markdown bold reference: https://www.markdownguide.org/basic-syntax/#bold",
		}, got[0].Fixes)
	})

	t.Run("fixed underscore", func(t *testing.T) {
		t.Parallel()

		got := applyRule(t, NewStrongStyleRule(), input, boldConfig(config.BoldUnderscore))
		require.Len(t, got, 1)
		assert.Equal(t, pos(1, 1, 1, 6, 0, 5), got[0].Position)
		assert.Equal(t, `Wrong bold style. Expected "underscore", got "asterisk"`, got[0].Message)
	})

	t.Run("emphasis is not strong", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, applyRule(t, NewStrongStyleRule(), "*a* and _b_\n", boldConfig(config.BoldConsistent)))
	})
}
