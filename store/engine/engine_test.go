package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	e, err := NewEngine(DefaultStoreConfig())
	require.NoError(t, err)
	require.NotNil(t, e)

	assert.Equal(t, "Demo Grocery", e.GetConfig().Name)
	assert.Equal(t, 19, e.Layout().Width())
	assert.Equal(t, 12, e.Layout().Height())
	assert.Equal(t, DefaultUnits, e.Units())
	assert.Len(t, e.Items(), 26)
	assert.Len(t, e.StartLocations(), 13)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	config := DefaultStoreConfig()
	config.Sections = nil

	e, err := NewEngine(config)
	assert.Error(t, err)
	assert.Nil(t, e)
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()

	var _ Engine = e
	assert.Equal(t, DefaultSectionPriority, e.SectionPriority())
	assert.Len(t, e.SearchItems("fruit", 0), 2)
}

func TestEngineUnitsFromConfig(t *testing.T) {
	config := DefaultStoreConfig()
	config.FeetPerCell = 5
	config.WalkingFeetPerMinute = 50

	e, err := NewEngine(config)
	require.NoError(t, err)

	route := e.CalculateRoute(Cell{X: 2, Y: 9}, Cell{X: 7, Y: 1})
	assert.Equal(t, 65, route.TotalDistance)
	assert.Equal(t, 2, route.EstimatedTime)
}

func TestEngineSectionPriorityFallback(t *testing.T) {
	config := DefaultStoreConfig()
	config.SectionPriority = nil
	config.Sections = config.Sections[:3]
	config.Items = config.Items[:9]

	e, err := NewEngine(config)
	require.NoError(t, err)
	assert.Equal(t, []string{"produce", "dairy"}, e.SectionPriority())
}

func TestEngineIsSafeForConcurrentUse(t *testing.T) {
	e := NewEngineWithDefaults()
	items := e.Items()

	done := make(chan OptimalRoute, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			done <- e.CalculateOptimalRoute(Cell{X: 2, Y: 9}, items, PathWalkable)
		}()
	}

	first := <-done
	for i := 1; i < cap(done); i++ {
		assert.Equal(t, first, <-done)
	}
}
