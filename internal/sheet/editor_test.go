package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/measurebook/measurebook/internal/billing"
)

func TestAddSectionAssignsSequentialOrder(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	ed.AddSection("Superstructure")

	secs := ed.Sections()
	require.Len(t, secs, 2)
	assert.Equal(t, 0, secs[0].Order)
	assert.Equal(t, 1, secs[1].Order)
	assert.Equal(t, 0.0, secs[0].TotalAmount)
	assert.Empty(t, secs[0].Items)
}

func TestAddItemSeedsDefaults(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	require.NoError(t, ed.AddItem(0))

	item := ed.Sections()[0].Items[0]
	assert.Equal(t, billing.DefaultUOM, item.UOM)
	assert.Equal(t, 1.0, item.Size)
	assert.Equal(t, 1.0, item.Qty)
	assert.Equal(t, 0.0, item.Rate)
	assert.Equal(t, 0.0, item.Amount)
	assert.Equal(t, 0, item.Order)
}

func TestSetItemFieldRecomputesAmounts(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	require.NoError(t, ed.AddItem(0))

	require.NoError(t, ed.SetItemField(0, 0, "description", "Excavation"))
	require.NoError(t, ed.SetItemField(0, 0, "size", "10"))
	require.NoError(t, ed.SetItemField(0, 0, "qty", "2"))
	require.NoError(t, ed.SetItemField(0, 0, "rate", "500"))

	sec := ed.Sections()[0]
	assert.Equal(t, 10000.0, sec.Items[0].Amount)
	assert.Equal(t, 10000.0, sec.TotalAmount)

	totals := ed.Totals(18)
	assert.Equal(t, 10000.0, totals.Subtotal)
	assert.Equal(t, 1800.0, totals.GSTAmount)
	assert.Equal(t, 11800.0, totals.FinalTotal)
}

func TestSetItemFieldUnparsableNumericBecomesZero(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	require.NoError(t, ed.AddItem(0))
	require.NoError(t, ed.SetItemField(0, 0, "rate", "500"))
	require.NoError(t, ed.SetItemField(0, 0, "qty", "not-a-number"))

	assert.Equal(t, 0.0, ed.Sections()[0].Items[0].Amount)
	assert.Equal(t, 0.0, ed.Sections()[0].TotalAmount)
}

func TestSetItemFieldRejectsUnknownUOM(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	require.NoError(t, ed.AddItem(0))

	err := ed.SetItemField(0, 0, "uom", "furlong")
	require.Error(t, err)
	assert.Equal(t, billing.DefaultUOM, ed.Sections()[0].Items[0].UOM)

	require.NoError(t, ed.SetItemField(0, 0, "uom", "Sqm"))
	assert.Equal(t, billing.UOMSqm, ed.Sections()[0].Items[0].UOM)
}

func TestRemoveOnlyItemZeroesSectionTotal(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	require.NoError(t, ed.AddItem(0))
	require.NoError(t, ed.SetItemField(0, 0, "size", "10"))
	require.NoError(t, ed.SetItemField(0, 0, "rate", "500"))
	require.Equal(t, 5000.0, ed.Sections()[0].TotalAmount)

	require.NoError(t, ed.RemoveItem(0, 0))
	assert.Equal(t, 0.0, ed.Sections()[0].TotalAmount)
	assert.Empty(t, ed.Sections()[0].Items)
}

func TestRemoveItemRenumbersOrders(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundation")
	for i := 0; i < 3; i++ {
		require.NoError(t, ed.AddItem(0))
	}
	require.NoError(t, ed.RemoveItem(0, 1))

	items := ed.Sections()[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, 1, items[1].Order)
}

func TestRemoveSectionRenumbersOrders(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("A")
	ed.AddSection("B")
	ed.AddSection("C")
	require.NoError(t, ed.RemoveSection(0))

	secs := ed.Sections()
	require.Len(t, secs, 2)
	assert.Equal(t, "B", secs[0].Title)
	assert.Equal(t, 0, secs[0].Order)
	assert.Equal(t, 1, secs[1].Order)
}

func TestRenameSection(t *testing.T) {
	ed := NewEditor(nil)
	ed.AddSection("Foundatoin")
	require.NoError(t, ed.RenameSection(0, "Foundation"))
	assert.Equal(t, "Foundation", ed.Sections()[0].Title)

	require.ErrorIs(t, ed.RenameSection(5, "x"), ErrSectionOutOfRange)
}

func TestNewEditorRecomputesStaleAmounts(t *testing.T) {
	// Loaded sheets may carry stale derived fields; the editor fixes them
	// before the first mutation.
	ed := NewEditor([]Section{{
		Title:       "Foundation",
		TotalAmount: 999,
		Items: []Item{{
			UOM: billing.UOMNos, Size: 2, Qty: 3, Rate: 10, Amount: 1,
		}},
	}})

	sec := ed.Sections()[0]
	assert.Equal(t, 60.0, sec.Items[0].Amount)
	assert.Equal(t, 60.0, sec.TotalAmount)
}

func TestOutOfRangeOperations(t *testing.T) {
	ed := NewEditor(nil)
	assert.ErrorIs(t, ed.AddItem(0), ErrSectionOutOfRange)
	assert.ErrorIs(t, ed.RemoveSection(0), ErrSectionOutOfRange)

	ed.AddSection("A")
	assert.ErrorIs(t, ed.RemoveItem(0, 0), ErrItemOutOfRange)
	assert.ErrorIs(t, ed.SetItemField(0, 0, "rate", "1"), ErrItemOutOfRange)

	require.NoError(t, ed.AddItem(0))
	assert.ErrorIs(t, ed.SetItemField(0, 0, "colour", "blue"), ErrUnknownField)
}
