package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnyIgnoresCase(t *testing.T) {
	m := New("  WHISK ")
	assert.True(t, m.Any("Jack Daniel's", "Whiskey"))
	assert.False(t, m.Any("Absolut Vodka", "Vodka"))
}

func TestAnyFoldsAccents(t *testing.T) {
	assert.True(t, New("PATRÓN").Any("Patrón Silver"))
}

func TestFilter(t *testing.T) {
	type row struct{ name, category string }
	rows := []row{{"Jack Daniel's", "Whiskey"}, {"Absolut Vodka", "Vodka"}, {"Bacardi Superior", "Rum"}}
	fields := func(r row) []string { return []string{r.name, r.category} }

	assert.Len(t, Filter("", rows, fields), 3)
	got := Filter("vod", rows, fields)
	assert.Equal(t, []row{{"Absolut Vodka", "Vodka"}}, got)
	assert.Empty(t, Filter("tequila", rows, fields))
}
