package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanMove_InsertBefore(t *testing.T) {
	cards := []Card{
		{Name: "A", Row: 1, Order: 1},
		{Name: "B", Row: 1, Order: 2},
		{Name: "C", Row: 1, Order: 3},
	}

	plan, err := PlanMove(cards, "C", 1, "A")
	require.NoError(t, err)

	// New layout is C A B; only changed cards are reported.
	assert.ElementsMatch(t, []Placement{
		{Name: "C", Row: 1, Order: 1, OldRow: 1, OldOrder: 3},
		{Name: "A", Row: 1, Order: 2, OldRow: 1, OldOrder: 1},
		{Name: "B", Row: 1, Order: 3, OldRow: 1, OldOrder: 2},
	}, plan)
}

func TestPlanMove_AppendToRow(t *testing.T) {
	cards := []Card{
		{Name: "A", Row: 1, Order: 1},
		{Name: "B", Row: 1, Order: 2},
	}

	plan, err := PlanMove(cards, "A", 1, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []Placement{
		{Name: "B", Row: 1, Order: 1, OldRow: 1, OldOrder: 2},
		{Name: "A", Row: 1, Order: 2, OldRow: 1, OldOrder: 1},
	}, plan)
}

func TestPlanMove_CrossRowResequencesBoth(t *testing.T) {
	cards := []Card{
		{Name: "A", Row: 1, Order: 1},
		{Name: "B", Row: 1, Order: 2},
		{Name: "C", Row: 2, Order: 1},
	}

	plan, err := PlanMove(cards, "A", 2, "C")
	require.NoError(t, err)
	assert.ElementsMatch(t, []Placement{
		{Name: "A", Row: 2, Order: 1, OldRow: 1, OldOrder: 1},
		{Name: "C", Row: 2, Order: 2, OldRow: 2, OldOrder: 1},
		{Name: "B", Row: 1, Order: 1, OldRow: 1, OldOrder: 2},
	}, plan)
}

func TestPlanMove_IntoEmptyRow(t *testing.T) {
	cards := []Card{
		{Name: "A", Row: 1, Order: 1},
	}

	plan, err := PlanMove(cards, "A", 3, "")
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, Placement{Name: "A", Row: 3, Order: 1, OldRow: 1, OldOrder: 1}, plan[0])
}

func TestPlanMove_NoChange(t *testing.T) {
	cards := []Card{
		{Name: "A", Row: 1, Order: 1},
		{Name: "B", Row: 1, Order: 2},
	}

	plan, err := PlanMove(cards, "B", 1, "")
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestPlanMove_UnknownFolder(t *testing.T) {
	_, err := PlanMove([]Card{{Name: "A", Row: 1, Order: 1}}, "Missing", 1, "")
	assert.Error(t, err)
}
