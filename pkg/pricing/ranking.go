package pricing

import (
	"slices"
	"strconv"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// MaxRank returns the highest priority present in the list, or 1 when the
// list is empty. Unmatched values rank at MaxRank, so it doubles as the
// "worst rank" for a column.
func MaxRank(list []domain.PriorityItem) int {
	maxRank := 1
	for i := range list {
		if list[i].Priority > maxRank {
			maxRank = list[i].Priority
		}
	}
	return maxRank
}

// RankOf resolves the priority rank of a unit's field value. Numeric values
// are tried in their canonical numeric rendering first ("4.0" matches "4"),
// then the raw string form. A value covered by no item gets the worst rank;
// rank lookups are total, never an error.
func RankOf(p *domain.Premises, field string, list []domain.PriorityItem) int {
	value, ok := p.FieldValue(field)
	if !ok {
		return MaxRank(list)
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		numeric := strconv.FormatFloat(f, 'f', -1, 64)
		if rank, found := lookupRank(numeric, list); found {
			return rank
		}
	}

	if rank, found := lookupRank(value, list); found {
		return rank
	}

	return MaxRank(list)
}

func lookupRank(value string, list []domain.PriorityItem) (int, bool) {
	for i := range list {
		if slices.Contains(list[i].Values, value) {
			return list[i].Priority, true
		}
	}
	return 0, false
}

// RankIndex is a pre-built value→rank table for one column, so scoring a
// whole population avoids rescanning the priority list per unit.
type RankIndex struct {
	byValue map[string]int
	maxRank int
}

// NewRankIndex indexes a priority list for O(1) rank lookups.
func NewRankIndex(list []domain.PriorityItem) *RankIndex {
	idx := &RankIndex{
		byValue: make(map[string]int),
		maxRank: MaxRank(list),
	}
	for i := range list {
		for _, v := range list[i].Values {
			// First item covering a value wins, matching linear scan order.
			if _, taken := idx.byValue[v]; !taken {
				idx.byValue[v] = list[i].Priority
			}
		}
	}
	return idx
}

// Max returns the worst rank for the indexed column.
func (idx *RankIndex) Max() int {
	return idx.maxRank
}

// Rank resolves a unit's rank using the same value-form rules as RankOf.
func (idx *RankIndex) Rank(p *domain.Premises, field string) int {
	value, ok := p.FieldValue(field)
	if !ok {
		return idx.maxRank
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		numeric := strconv.FormatFloat(f, 'f', -1, 64)
		if rank, found := idx.byValue[numeric]; found {
			return rank
		}
	}

	if rank, found := idx.byValue[value]; found {
		return rank
	}

	return idx.maxRank
}

// InitColumn builds the initial priority list for a column: one singleton
// item per distinct raw value, in population encounter order, priorities
// 1..N. Called lazily the first time a column is inspected.
func InitColumn(population []domain.Premises, field string) []domain.PriorityItem {
	seen := map[string]struct{}{}
	var list []domain.PriorityItem

	for i := range population {
		value, ok := population[i].FieldValue(field)
		if !ok {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		list = append(list, domain.PriorityItem{
			Name:     value,
			Values:   []string{value},
			Priority: len(list) + 1,
		})
	}

	return list
}

// CreateGroup replaces the singleton items for the given values with one
// group item inserted at the requested priority slot, then renumbers the
// column back to a contiguous 1..N. Values already inside another group are
// left alone; a value is never covered by two items at once.
func CreateGroup(
	list []domain.PriorityItem,
	name string,
	values []string,
	priority int,
) []domain.PriorityItem {
	if len(values) == 0 || name == "" {
		return list
	}

	kept := make([]domain.PriorityItem, 0, len(list))
	for i := range list {
		isGroupedSingleton := len(list[i].Values) == 1 &&
			slices.Contains(values, list[i].Values[0])
		if !isGroupedSingleton {
			kept = append(kept, list[i])
		}
	}

	group := domain.PriorityItem{Name: name, Values: values}

	slot := clampSlot(priority, len(kept)+1)
	kept = slices.Insert(kept, slot-1, group)

	return renumber(kept)
}

// MoveItem moves the named item to the given priority slot and renumbers.
// Unknown names leave the list untouched.
func MoveItem(list []domain.PriorityItem, name string, priority int) []domain.PriorityItem {
	from := slices.IndexFunc(list, func(it domain.PriorityItem) bool {
		return it.Name == name
	})
	if from == -1 {
		return list
	}

	moved := list[from]
	out := slices.Delete(slices.Clone(list), from, from+1)

	slot := clampSlot(priority, len(out)+1)
	out = slices.Insert(out, slot-1, moved)

	return renumber(out)
}

// DeleteItem removes the named item and renumbers. When the removed item is
// a group, its member values are restored as singleton items appended after
// the surviving items, so every population value stays covered.
func DeleteItem(list []domain.PriorityItem, name string) []domain.PriorityItem {
	at := slices.IndexFunc(list, func(it domain.PriorityItem) bool {
		return it.Name == name
	})
	if at == -1 {
		return list
	}

	removed := list[at]
	out := slices.Delete(slices.Clone(list), at, at+1)

	if len(removed.Values) > 1 {
		for _, v := range removed.Values {
			out = append(out, domain.PriorityItem{Name: v, Values: []string{v}})
		}
	}

	return renumber(out)
}

func renumber(list []domain.PriorityItem) []domain.PriorityItem {
	for i := range list {
		list[i].Priority = i + 1
	}
	return list
}

func clampSlot(slot, max int) int {
	if slot < 1 {
		return 1
	}
	if slot > max {
		return max
	}
	return slot
}
