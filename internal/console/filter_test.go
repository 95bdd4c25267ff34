package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_FilterChangesResetPage(t *testing.T) {
	s := Selection{Page: 1}.WithPage(7)

	assert.Equal(t, 1, s.WithStatus("approved").Page)
	assert.Equal(t, 1, s.WithSearch("tv").Page)
	assert.Equal(t, 1, s.WithOrdering("-name").Page)
}

func TestSelection_UnchangedValueKeepsPage(t *testing.T) {
	s := Selection{Status: "pending", Search: "tv", Page: 4}

	assert.Equal(t, 4, s.WithStatus("pending").Page)
	assert.Equal(t, 4, s.WithSearch("tv").Page)
}

func TestSelection_WithPageClampsBelowOne(t *testing.T) {
	assert.Equal(t, 1, Selection{}.WithPage(0).Page)
	assert.Equal(t, 1, Selection{}.WithPage(-3).Page)
	assert.Equal(t, 9, Selection{}.WithPage(9).Page)
}

func TestSelection_ParamsMapping(t *testing.T) {
	s := Selection{Status: "rejected", Search: "tv", Ordering: "-date_created", Page: 2}
	p := s.Params()

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, "tv", p.Search)
	assert.Equal(t, "rejected", p.Status)
	assert.Equal(t, "-date_created", p.Ordering)
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabAll, ParseTab("all"))
	assert.Equal(t, TabMine, ParseTab("mine"))
	assert.Equal(t, TabPending, ParseTab("pending"))
	assert.Equal(t, TabPending, ParseTab(""))
	assert.Equal(t, TabPending, ParseTab("nonsense"))
}
