package tree

import (
	"fmt"
)

// Placement records a folder card whose row or order assignment changed
// during a reorder. Old values let the caller delete the superseded markers.
type Placement struct {
	Name     string
	Row      int
	Order    int
	OldRow   int
	OldOrder int
}

// PlanMove recomputes the row/order assignment after dragging the named card
// into targetRow, in front of the card named before (empty before = append at
// the end of the row, or into an empty row). Cards must be in display order,
// as returned by BuildCards. Only cards whose assignment actually changed are
// returned; both the source and the target row are re-sequenced from 1.
func PlanMove(cards []Card, name string, targetRow int, before string) ([]Placement, error) {
	var moved *Card
	rows := make(map[int][]Card)
	for _, c := range cards {
		if c.Name == name {
			cc := c
			moved = &cc
			continue
		}
		rows[c.Row] = append(rows[c.Row], c)
	}
	if moved == nil {
		return nil, fmt.Errorf("unknown folder %q", name)
	}

	target := rows[targetRow]
	at := len(target)
	if before != "" {
		for i, c := range target {
			if c.Name == before {
				at = i
				break
			}
		}
	}
	target = append(target[:at:at], append([]Card{*moved}, target[at:]...)...)
	rows[targetRow] = target

	affected := []int{targetRow}
	if moved.Row != targetRow {
		affected = append(affected, moved.Row)
	}

	var plan []Placement
	for _, row := range affected {
		for i, c := range rows[row] {
			order := i + 1
			oldRow, oldOrder := c.Row, c.Order
			if c.Name == name {
				oldRow, oldOrder = moved.Row, moved.Order
			}
			if oldRow == row && oldOrder == order {
				continue
			}
			plan = append(plan, Placement{
				Name:     c.Name,
				Row:      row,
				Order:    order,
				OldRow:   oldRow,
				OldOrder: oldOrder,
			})
		}
	}
	return plan, nil
}
