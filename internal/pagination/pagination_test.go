package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	t.Run("first page", func(t *testing.T) {
		page := Paginate(items, 1, 5)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, page.Items)
		assert.Equal(t, 7, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := Paginate(items, 2, 5)
		assert.Equal(t, []string{"f", "g"}, page.Items)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("out of range page clamps to last", func(t *testing.T) {
		page := Paginate(items, 3, 5)
		assert.Equal(t, []string{"f", "g"}, page.Items)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("zero page clamps to first", func(t *testing.T) {
		page := Paginate(items, 0, 5)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, page.Items)
		assert.Equal(t, 1, page.Page)
	})

	t.Run("empty list yields one empty page", func(t *testing.T) {
		page := Paginate([]string{}, 1, 5)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("page size below one is corrected", func(t *testing.T) {
		page := Paginate([]string{"a", "b"}, 1, 0)
		assert.Equal(t, []string{"a"}, page.Items)
		assert.Equal(t, 1, page.PageSize)
		assert.Equal(t, 2, page.TotalPages)
	})
}

func TestFilter(t *testing.T) {
	type order struct {
		Number string
		Client string
	}
	orders := []order{
		{Number: "PO-2026-001", Client: "Company Alpha"},
		{Number: "PO-2026-002", Client: "Acme Industries"},
		{Number: "PO-2026-003", Client: "Western Manufacturing"},
	}
	text := func(o order) string { return o.Number + " " + o.Client }

	t.Run("case-insensitive substring", func(t *testing.T) {
		got := Filter(orders, "ACME", text)
		assert.Len(t, got, 1)
		assert.Equal(t, "PO-2026-002", got[0].Number)
	})

	t.Run("matches across fields preserving order", func(t *testing.T) {
		got := Filter(orders, "po-2026", text)
		assert.Len(t, got, 3)
		assert.Equal(t, "PO-2026-001", got[0].Number)
		assert.Equal(t, "PO-2026-003", got[2].Number)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, Filter(orders, "", text), 3)
		assert.Len(t, Filter(orders, "   ", text), 3)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		assert.Empty(t, Filter(orders, "does-not-exist", text))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		Filter(orders, "alpha", text)
		assert.Equal(t, "Company Alpha", orders[0].Client)
		assert.Len(t, orders, 3)
	})
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5, 7))
	assert.Equal(t, 1, ClampPage(-3, 5, 7))
	assert.Equal(t, 1, ClampPage(1, 5, 7))
	assert.Equal(t, 2, ClampPage(2, 5, 7))
	assert.Equal(t, 2, ClampPage(3, 5, 7))
	assert.Equal(t, 1, ClampPage(4, 5, 0))
	assert.Equal(t, 2, ClampPage(2, 0, 10))
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 20, ClampPageSize(0, 20, 100))
	assert.Equal(t, 20, ClampPageSize(-5, 20, 100))
	assert.Equal(t, 50, ClampPageSize(50, 20, 100))
	assert.Equal(t, 100, ClampPageSize(250, 20, 100))
	assert.Equal(t, 1, ClampPageSize(1, 20, 100))
}
