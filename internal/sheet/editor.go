// Package sheet implements the in-memory measurement sheet editor: the
// full tree of sections and items for one project during an editing
// session. Every mutation goes through an aggregate method and leaves the
// derived amounts consistent; nothing touches storage until the sheet is
// handed to the reconciliation save.
package sheet

import (
	"errors"
	"strconv"

	"github.com/measurebook/measurebook/internal/billing"
)

var (
	ErrSectionOutOfRange = errors.New("section position out of range")
	ErrItemOutOfRange    = errors.New("item position out of range")
	ErrUnknownField      = errors.New("unknown item field")
)

// Item is one editable measurement line.
type Item struct {
	Description string
	UOM         billing.UOM
	Size        float64
	Qty         float64
	Rate        float64
	Amount      float64
	Order       int
}

// Section is a titled group of items with a derived total.
type Section struct {
	Title       string
	Order       int
	TotalAmount float64
	Items       []Item
}

// Totals is the derived project-level summary of a sheet.
type Totals struct {
	Subtotal   float64
	GSTAmount  float64
	FinalTotal float64
}

// Editor holds the mutable sheet state. All mutations are synchronous and
// recompute the affected section total before returning.
type Editor struct {
	sections []Section
}

// NewEditor starts an editing session from a persisted sheet.
func NewEditor(sections []Section) *Editor {
	ed := &Editor{sections: sections}
	for i := range ed.sections {
		ed.recompute(i)
	}
	return ed
}

// Sections returns the current sheet state.
func (e *Editor) Sections() []Section {
	return e.sections
}

// AddSection appends an empty section with the next sequential order.
func (e *Editor) AddSection(title string) {
	e.sections = append(e.sections, Section{
		Title: title,
		Order: len(e.sections),
	})
}

// RemoveSection drops the section at pos. Remaining orders are renumbered
// so the sequence stays dense.
func (e *Editor) RemoveSection(pos int) error {
	if pos < 0 || pos >= len(e.sections) {
		return ErrSectionOutOfRange
	}
	e.sections = append(e.sections[:pos], e.sections[pos+1:]...)
	for i := range e.sections {
		e.sections[i].Order = i
	}
	return nil
}

// RenameSection sets a section title.
func (e *Editor) RenameSection(pos int, title string) error {
	if pos < 0 || pos >= len(e.sections) {
		return ErrSectionOutOfRange
	}
	e.sections[pos].Title = title
	return nil
}

// AddItem appends a default-seeded item to the section at pos.
func (e *Editor) AddItem(pos int) error {
	if pos < 0 || pos >= len(e.sections) {
		return ErrSectionOutOfRange
	}
	sec := &e.sections[pos]
	sec.Items = append(sec.Items, Item{
		UOM:   billing.DefaultUOM,
		Size:  1,
		Qty:   1,
		Rate:  0,
		Order: len(sec.Items),
	})
	e.recompute(pos)
	return nil
}

// RemoveItem drops an item and recomputes the section total immediately.
func (e *Editor) RemoveItem(sectionPos, itemPos int) error {
	if sectionPos < 0 || sectionPos >= len(e.sections) {
		return ErrSectionOutOfRange
	}
	sec := &e.sections[sectionPos]
	if itemPos < 0 || itemPos >= len(sec.Items) {
		return ErrItemOutOfRange
	}
	sec.Items = append(sec.Items[:itemPos], sec.Items[itemPos+1:]...)
	for i := range sec.Items {
		sec.Items[i].Order = i
	}
	e.recompute(sectionPos)
	return nil
}

// SetItemField updates one field of an item. Numeric fields parse the raw
// value with unparsable input substituted by 0, then the item amount and
// section total are recomputed. Field names match the wire format:
// description, uom, size, qty, rate.
func (e *Editor) SetItemField(sectionPos, itemPos int, field, value string) error {
	if sectionPos < 0 || sectionPos >= len(e.sections) {
		return ErrSectionOutOfRange
	}
	sec := &e.sections[sectionPos]
	if itemPos < 0 || itemPos >= len(sec.Items) {
		return ErrItemOutOfRange
	}
	item := &sec.Items[itemPos]

	switch field {
	case "description":
		item.Description = value
	case "uom":
		uom, err := billing.ParseUOM(value)
		if err != nil {
			return err
		}
		item.UOM = uom
	case "size":
		item.Size = parseNumeric(value)
	case "qty":
		item.Qty = parseNumeric(value)
	case "rate":
		item.Rate = parseNumeric(value)
	default:
		return ErrUnknownField
	}

	item.Amount = billing.ItemAmount(item.Size, item.Qty, item.Rate)
	e.recompute(sectionPos)
	return nil
}

// Totals derives the project summary fresh from the current sections.
func (e *Editor) Totals(gstPercent float64) Totals {
	sectionTotals := make([]float64, len(e.sections))
	for i, sec := range e.sections {
		sectionTotals[i] = sec.TotalAmount
	}
	subtotal, gst, final := billing.ProjectTotals(sectionTotals, gstPercent)
	return Totals{Subtotal: subtotal, GSTAmount: gst, FinalTotal: final}
}

func (e *Editor) recompute(pos int) {
	sec := &e.sections[pos]
	amounts := make([]float64, len(sec.Items))
	for i := range sec.Items {
		sec.Items[i].Amount = billing.ItemAmount(sec.Items[i].Size, sec.Items[i].Qty, sec.Items[i].Rate)
		amounts[i] = sec.Items[i].Amount
	}
	sec.TotalAmount = billing.SectionTotal(amounts)
}

func parseNumeric(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
