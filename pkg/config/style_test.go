package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/config"
)

func TestParseHeadingStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		prev     config.HeadingStyle
		expected config.HeadingStyle
		warns    bool
	}{
		{"consistent", config.HeadingATX, config.HeadingConsistent, false},
		{"atx", config.HeadingConsistent, config.HeadingATX, false},
		{"ATX", config.HeadingConsistent, config.HeadingATX, false},
		{" SetExt ", config.HeadingConsistent, config.HeadingSetext, false},
		{"atx_closed", config.HeadingSetext, config.HeadingSetext, true},
		{"", config.HeadingATX, config.HeadingATX, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, warning := config.ParseHeadingStyle(tc.input, tc.prev)
			assert.Equal(t, tc.expected, got)
			if tc.warns {
				require.NotNil(t, warning)
				assert.Equal(t, "style.headings", warning.Key)
				assert.Contains(t, warning.String(), `keeping "`+string(tc.prev)+`"`)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestParseUnorderedListStyle(t *testing.T) {
	t.Parallel()

	got, warning := config.ParseUnorderedListStyle("Plus", config.UnorderedListConsistent)
	assert.Equal(t, config.UnorderedListPlus, got)
	assert.Nil(t, warning)

	got, warning = config.ParseUnorderedListStyle("bullet", config.UnorderedListDash)
	assert.Equal(t, config.UnorderedListDash, got)
	require.NotNil(t, warning)
	assert.Equal(t, []string{"consistent", "dash", "asterisk", "plus"}, warning.Allowed)
}

func TestParseBoldStyle(t *testing.T) {
	t.Parallel()

	got, warning := config.ParseBoldStyle("underscore", config.BoldConsistent)
	assert.Equal(t, config.BoldUnderscore, got)
	assert.Nil(t, warning)

	got, warning = config.ParseBoldStyle("tilde", config.BoldAsterisk)
	assert.Equal(t, config.BoldAsterisk, got)
	assert.NotNil(t, warning)
}

func TestStyleConfig_Normalize(t *testing.T) {
	t.Parallel()

	prev := config.NewConfig().Style
	in := config.StyleConfig{Headings: "SETEXT", UnorderedLists: "circle"}

	out, warnings := in.Normalize(prev)

	assert.Equal(t, config.HeadingSetext, out.Headings)
	assert.Equal(t, config.UnorderedListConsistent, out.UnorderedLists)
	assert.Equal(t, config.BoldConsistent, out.Bold)
	require.Len(t, warnings, 1)
	assert.Equal(t, "circle", warnings[0].Value)
}
