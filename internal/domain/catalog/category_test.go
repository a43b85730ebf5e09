package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"THESIS", CategoryThesis},
		{"thesis", CategoryThesis},
		{"  Dissertation ", CategoryDissertation},
		{"confluence", CategoryConfluence},
		{"Synergy", CategorySynergy},
		{"SYNERGY ", CategorySynergy},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Canonical(c.in), "input %q", c.in)
	}
}

func TestCanonical_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, FallbackCategory, Canonical("JOURNAL"))
	assert.Equal(t, FallbackCategory, Canonical(""))
	// Substring matches are not a thing: a value merely containing a known
	// name is still unknown.
	assert.Equal(t, FallbackCategory, Canonical("SYNERGY-2021"))
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory("synergy"))
	assert.True(t, KnownCategory(" THESIS "))
	assert.False(t, KnownCategory("SYNERGY-2021"))
	assert.False(t, KnownCategory(""))
}

func TestIsCompiled(t *testing.T) {
	assert.True(t, IsCompiled("CONFLUENCE"))
	assert.True(t, IsCompiled("synergy"))
	assert.False(t, IsCompiled("THESIS"))
	assert.False(t, IsCompiled("DISSERTATION"))
}

func TestSecondaryField(t *testing.T) {
	// SYNERGY volumes are identified by department, CONFLUENCE by issue
	// number, regardless of which raw column is populated.
	assert.Equal(t, SecondaryDepartment, SecondaryField("SYNERGY"))
	assert.Equal(t, SecondaryDepartment, SecondaryField("synergy "))
	assert.Equal(t, SecondaryIssueNumber, SecondaryField("CONFLUENCE"))
	assert.Equal(t, SecondaryIssueNumber, SecondaryField("confluence"))
}
