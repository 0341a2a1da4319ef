package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
)

func TestStageBySlug(t *testing.T) {
	for _, slug := range []string{SlugBasics, SlugBackground, SlugHealth, SlugGenetic, SlugCompensation, SlugLegal} {
		s, ok := StageBySlug(slug)
		require.True(t, ok, "stage %s", slug)
		assert.Equal(t, slug, s.Slug)
	}

	_, ok := StageBySlug("nonsense")
	assert.False(t, ok)
}

func TestStageByNumber_Bounds(t *testing.T) {
	_, ok := StageByNumber(0)
	assert.False(t, ok)
	_, ok = StageByNumber(7)
	assert.False(t, ok)

	s, ok := StageByNumber(1)
	require.True(t, ok)
	assert.Equal(t, SlugBasics, s.Slug)
}

func TestStage_SubStepCounts(t *testing.T) {
	expected := map[string]int{
		SlugBasics:       4,
		SlugBackground:   3,
		SlugHealth:       4,
		SlugGenetic:      1,
		SlugCompensation: 1,
		SlugLegal:        1,
	}
	for slug, count := range expected {
		s, ok := StageBySlug(slug)
		require.True(t, ok)
		assert.Equal(t, count, s.SubSteps, "stage %s", slug)
	}
}

func TestStage_IsTerminalSubStep(t *testing.T) {
	basics, _ := StageBySlug(SlugBasics)
	assert.False(t, basics.IsTerminalSubStep(0))
	assert.False(t, basics.IsTerminalSubStep(2))
	assert.True(t, basics.IsTerminalSubStep(3))

	legal, _ := StageBySlug(SlugLegal)
	assert.True(t, legal.IsTerminalSubStep(0))
}

func TestStage_AdvanceTargets(t *testing.T) {
	tests := []struct {
		slug      string
		advanceTo int
		nextRoute routing.RouteID
	}{
		{SlugBasics, 2, routing.RouteBackground},
		{SlugBackground, 3, routing.RouteHealth},
		{SlugHealth, 4, routing.RouteGenetic},
		{SlugGenetic, 5, routing.RouteCompensation},
		// Compensation stays on coarse step 5 and hands off to legal.
		{SlugCompensation, 5, routing.RouteLegal},
		{SlugLegal, 6, routing.RouteProfileStatus},
	}

	for _, tt := range tests {
		s, ok := StageBySlug(tt.slug)
		require.True(t, ok)
		assert.Equal(t, tt.advanceTo, s.AdvanceTo, "stage %s advance", tt.slug)
		assert.Equal(t, tt.nextRoute, s.NextRoute(), "stage %s next route", tt.slug)
	}
}

func TestStage_BackRoute(t *testing.T) {
	basics, _ := StageBySlug(SlugBasics)
	assert.Equal(t, routing.RouteInitialOnboarding, basics.BackRoute())

	health, _ := StageBySlug(SlugHealth)
	assert.Equal(t, routing.RouteBackground, health.BackRoute())

	legal, _ := StageBySlug(SlugLegal)
	assert.Equal(t, routing.RouteCompensation, legal.BackRoute())
}
