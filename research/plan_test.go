package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_StandardShape(t *testing.T) {
	plan, err := BuildPlan(2)
	require.NoError(t, err)
	require.Equal(t, 5, plan.Len())

	byID := make(map[string]Task, plan.Len())
	for _, task := range plan.Tasks() {
		byID[task.ID] = task
	}

	search, ok := byID["search"]
	require.True(t, ok)
	assert.Equal(t, KindSearch, search.Kind)
	assert.Empty(t, search.DependsOn)

	for i := 0; i < 2; i++ {
		detail, ok := byID[detailTaskID(i)]
		require.True(t, ok)
		assert.Equal(t, KindDetail, detail.Kind)
		assert.Equal(t, i, detail.Slot)
		assert.Equal(t, []string{"search"}, detail.DependsOn)

		summarize, ok := byID[summarizeTaskID(i)]
		require.True(t, ok)
		assert.Equal(t, KindSummarize, summarize.Kind)
		assert.Equal(t, i, summarize.Slot)
		assert.Equal(t, []string{detailTaskID(i)}, summarize.DependsOn)
	}
}

func TestBuildPlan_SearchOnly(t *testing.T) {
	plan, err := BuildPlan(0)
	require.NoError(t, err)
	require.Equal(t, 1, plan.Len())
	assert.Equal(t, KindSearch, plan.Tasks()[0].Kind)
}

func TestBuildPlan_NegativeCountClamps(t *testing.T) {
	plan, err := BuildPlan(-3)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Len())
}

func TestNewPlan_Empty(t *testing.T) {
	_, err := NewPlan(nil)
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestNewPlan_DuplicateID(t *testing.T) {
	_, err := NewPlan([]Task{
		{ID: "fetch", Kind: KindSearch},
		{ID: "fetch", Kind: KindDetail},
	})
	require.ErrorIs(t, err, ErrDuplicateTask)
	assert.Contains(t, err.Error(), "fetch")
}

func TestNewPlan_UnknownDependency(t *testing.T) {
	_, err := NewPlan([]Task{
		{ID: "root", Kind: KindSearch},
		{ID: "leaf", Kind: KindDetail, DependsOn: []string{"ghost"}},
	})
	require.ErrorIs(t, err, ErrUnknownDependency)
	assert.Contains(t, err.Error(), "leaf depends on ghost")
}

func TestNewPlan_Cycle(t *testing.T) {
	_, err := NewPlan([]Task{
		{ID: "a", Kind: KindDetail, DependsOn: []string{"b"}},
		{ID: "b", Kind: KindSummarize, DependsOn: []string{"a"}},
	})
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestNewPlan_SelfDependency(t *testing.T) {
	_, err := NewPlan([]Task{
		{ID: "a", Kind: KindSearch, DependsOn: []string{"a"}},
	})
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestNewPlan_AcceptsDiamond(t *testing.T) {
	plan, err := NewPlan([]Task{
		{ID: "root", Kind: KindSearch},
		{ID: "left", Kind: KindDetail, Slot: 0, DependsOn: []string{"root"}},
		{ID: "right", Kind: KindDetail, Slot: 1, DependsOn: []string{"root"}},
		{ID: "join", Kind: KindSummarize, DependsOn: []string{"left", "right"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Len())
}

func TestPlan_TasksReturnsCopy(t *testing.T) {
	plan, err := BuildPlan(1)
	require.NoError(t, err)

	tasks := plan.Tasks()
	tasks[0].ID = "mutated"
	assert.Equal(t, "search", plan.Tasks()[0].ID)
}
