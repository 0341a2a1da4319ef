package wizard

// Package wizard models the six-stage onboarding wizard and the initial role
// selection flow. It owns stage ordering, sub-step progression, and field
// validation; persistence and upstream calls live in the service layer.

import (
	"github.com/helix-fertility/helix-ui-api/internal/domain/routing"
)

// Stage describes one of the six onboarding stages.
type Stage struct {
	// Number is the 1-based stage position used in upstream URLs (stage-1..stage-6).
	Number int
	// Slug is the URL segment for the stage's draft resource.
	Slug string
	// SubSteps is how many screens the stage is split into.
	SubSteps int
	// AdvanceTo is the coarse onboarding step recorded after a successful
	// submit. Compensation keeps the current step because legal consent
	// still has to be gathered before the profile is complete.
	AdvanceTo int
}

// Stage slugs as they appear in upstream resource paths.
const (
	SlugBasics       = "basics"
	SlugBackground   = "background"
	SlugHealth       = "health"
	SlugGenetic      = "genetic"
	SlugCompensation = "compensation"
	SlugLegal        = "legal"
)

var stages = []Stage{
	{Number: 1, Slug: SlugBasics, SubSteps: 4, AdvanceTo: 2},
	{Number: 2, Slug: SlugBackground, SubSteps: 3, AdvanceTo: 3},
	{Number: 3, Slug: SlugHealth, SubSteps: 4, AdvanceTo: 4},
	{Number: 4, Slug: SlugGenetic, SubSteps: 1, AdvanceTo: 5},
	{Number: 5, Slug: SlugCompensation, SubSteps: 1, AdvanceTo: 5},
	{Number: 6, Slug: SlugLegal, SubSteps: 1, AdvanceTo: 6},
}

// StageBySlug looks up a stage definition by its slug.
func StageBySlug(slug string) (Stage, bool) {
	for _, s := range stages {
		if s.Slug == slug {
			return s, true
		}
	}
	return Stage{}, false
}

// StageByNumber looks up a stage definition by its 1-based number.
func StageByNumber(n int) (Stage, bool) {
	if n < 1 || n > len(stages) {
		return Stage{}, false
	}
	return stages[n-1], true
}

// Stages returns the ordered stage definitions.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// IsTerminalSubStep reports whether subStep is the last screen of the stage,
// i.e. advancing from it submits the stage upstream.
func (s Stage) IsTerminalSubStep(subStep int) bool {
	return subStep >= s.SubSteps-1
}

// Route returns the client route for this stage.
func (s Stage) Route() routing.RouteID {
	return routing.StageRoute(s.Number)
}

// NextRoute returns where the user lands after this stage submits.
// Compensation hands off to the legal sibling on the same coarse step.
func (s Stage) NextRoute() routing.RouteID {
	if s.Slug == SlugCompensation {
		return routing.RouteLegal
	}
	if next, ok := StageByNumber(s.Number + 1); ok && s.Slug != SlugLegal {
		return next.Route()
	}
	return routing.RouteProfileStatus
}

// BackRoute returns where the user lands when backing out of the stage's
// first sub-step. The first stage returns to the initial role wizard.
func (s Stage) BackRoute() routing.RouteID {
	if s.Number == 1 {
		return routing.RouteInitialOnboarding
	}
	if prev, ok := StageByNumber(s.Number - 1); ok {
		return prev.Route()
	}
	return routing.RouteInitialOnboarding
}
