package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Size: 20}, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Size: 20}, 20)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestOrderClause(t *testing.T) {
	p := &Params{SortBy: "price", SortDir: "asc"}
	assert.Equal(t, "price asc", p.OrderClause())

	p = &Params{}
	assert.Equal(t, "created_at desc", p.OrderClause())
}
