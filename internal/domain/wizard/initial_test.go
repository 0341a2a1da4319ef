package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
)

func completeDonorAnswers() InitialAnswers {
	return InitialAnswers{
		TermsAccepted:  true,
		Gender:         "FEMALE",
		ServiceType:    identity.ServiceDonor,
		OnboardingRole: identity.RoleDonor,
		InterestedIn:   "EGG_DONATION",
		PairingTypes:   []string{"OPEN"},
	}
}

func TestFirstUnanswered_FastForwards(t *testing.T) {
	// Mid-flow answers never carry the terms flag; it only flips when the
	// whole set is submitted.
	tests := []struct {
		name     string
		answers  InitialAnswers
		expected InitialStep
	}{
		{name: "nothing answered", answers: InitialAnswers{}, expected: StepSplash},
		{name: "gender only", answers: InitialAnswers{
			Gender: "FEMALE",
		}, expected: StepService},
		{name: "donor path needs role", answers: InitialAnswers{
			Gender:      "FEMALE",
			ServiceType: identity.ServiceDonor,
		}, expected: StepDonorRole},
		{name: "donor path needs interest", answers: InitialAnswers{
			Gender:         "FEMALE",
			ServiceType:    identity.ServiceDonor,
			OnboardingRole: identity.RoleDonor,
		}, expected: StepInterestedIn},
		{name: "needs pairing types", answers: InitialAnswers{
			Gender:         "FEMALE",
			ServiceType:    identity.ServiceDonor,
			OnboardingRole: identity.RoleDonor,
			InterestedIn:   "EGG_DONATION",
		}, expected: StepPairingTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, done := FirstUnanswered(tt.answers)
			assert.False(t, done)
			assert.Equal(t, tt.expected, step)
		})
	}
}

func TestFirstUnanswered_TermsOnlyMatterAtTheEdges(t *testing.T) {
	// A prior full submit with the gender later cleared skips the splash.
	step, done := FirstUnanswered(InitialAnswers{TermsAccepted: true})
	assert.False(t, done)
	assert.Equal(t, StepGender, step)

	// Everything answered but never submitted re-lands on the final screen.
	answers := completeDonorAnswers()
	answers.TermsAccepted = false
	step, done = FirstUnanswered(answers)
	assert.False(t, done)
	assert.Equal(t, StepPairingTypes, step)
}

func TestFirstUnanswered_SurrogacyPathSkipsInterestedIn(t *testing.T) {
	answers := InitialAnswers{
		Gender:         "FEMALE",
		ServiceType:    identity.ServiceSurrogacy,
		OnboardingRole: "",
	}
	step, done := FirstUnanswered(answers)
	assert.False(t, done)
	assert.Equal(t, StepSurrogacyRole, step)

	answers.OnboardingRole = identity.RoleSurrogate
	step, done = FirstUnanswered(answers)
	assert.False(t, done)
	assert.Equal(t, StepPairingTypes, step)
}

func TestFirstUnanswered_AllAnswered(t *testing.T) {
	_, done := FirstUnanswered(completeDonorAnswers())
	assert.True(t, done)
}

func TestNextStep_DonorPath(t *testing.T) {
	a := completeDonorAnswers()
	assert.Equal(t, StepGender, NextStep(StepSplash, a))
	assert.Equal(t, StepService, NextStep(StepGender, a))
	assert.Equal(t, StepDonorRole, NextStep(StepService, a))
	assert.Equal(t, StepInterestedIn, NextStep(StepDonorRole, a))
	assert.Equal(t, StepPairingTypes, NextStep(StepInterestedIn, a))
}

func TestNextStep_SurrogacyPath(t *testing.T) {
	a := InitialAnswers{ServiceType: identity.ServiceSurrogacy}
	assert.Equal(t, StepSurrogacyRole, NextStep(StepService, a))
	assert.Equal(t, StepPairingTypes, NextStep(StepSurrogacyRole, a))
}

func TestValidateAnswers(t *testing.T) {
	require.NoError(t, ValidateAnswers(completeDonorAnswers()))

	tests := []struct {
		name   string
		mutate func(*InitialAnswers)
		field  string
	}{
		{name: "terms", mutate: func(a *InitialAnswers) { a.TermsAccepted = false }, field: "termsAccepted"},
		{name: "gender", mutate: func(a *InitialAnswers) { a.Gender = "" }, field: "gender"},
		{name: "service", mutate: func(a *InitialAnswers) { a.ServiceType = "" }, field: "serviceType"},
		{name: "role", mutate: func(a *InitialAnswers) { a.OnboardingRole = "" }, field: "onboardingRole"},
		{name: "unknown role", mutate: func(a *InitialAnswers) { a.OnboardingRole = "SOMETHING" }, field: "onboardingRole"},
		{name: "interested in on donor path", mutate: func(a *InitialAnswers) { a.InterestedIn = "" }, field: "interestedIn"},
		{name: "pairing types", mutate: func(a *InitialAnswers) { a.PairingTypes = nil }, field: "pairingTypes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := completeDonorAnswers()
			tt.mutate(&answers)
			err := ValidateAnswers(answers)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestValidateAnswers_SurrogacyPathNoInterestRequired(t *testing.T) {
	answers := InitialAnswers{
		TermsAccepted:  true,
		Gender:         "FEMALE",
		ServiceType:    identity.ServiceSurrogacy,
		OnboardingRole: identity.RoleSurrogate,
		PairingTypes:   []string{"ANONYMOUS"},
	}
	assert.NoError(t, ValidateAnswers(answers))
}
