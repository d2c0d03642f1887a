package domain

import "sort"

// Chessboard is the floor-by-column grid view of an object's premises.
// Rows are floors ascending, columns are unit numbers ascending. Cells hold
// indexes into the source slice; -1 marks an empty cell.
type Chessboard struct {
	Floors []int
	Units  []int
	cells  map[[2]int]int
}

// BuildChessboard indexes premises by (floor, number_of_unit). When two
// units collide on the same cell, the first one in slice order wins.
func BuildChessboard(premises []Premises) *Chessboard {
	floorSet := map[int]struct{}{}
	unitSet := map[int]struct{}{}
	cells := make(map[[2]int]int, len(premises))

	for i := range premises {
		p := &premises[i]
		floorSet[p.Floor] = struct{}{}
		unitSet[p.NumberOfUnit] = struct{}{}

		key := [2]int{p.Floor, p.NumberOfUnit}
		if _, taken := cells[key]; !taken {
			cells[key] = i
		}
	}

	return &Chessboard{
		Floors: sortedKeys(floorSet),
		Units:  sortedKeys(unitSet),
		cells:  cells,
	}
}

// At returns the premises index at (floor, unit), or -1 for an empty cell.
func (c *Chessboard) At(floor, unit int) int {
	idx, ok := c.cells[[2]int{floor, unit}]
	if !ok {
		return -1
	}
	return idx
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
