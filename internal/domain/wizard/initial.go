package wizard

import (
	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
)

// InitialStep names a screen in the role selection wizard.
type InitialStep string

const (
	StepSplash        InitialStep = "SPLASH"
	StepGender        InitialStep = "GENDER"
	StepService       InitialStep = "SERVICE"
	StepDonorRole     InitialStep = "DONOR_ROLE"
	StepSurrogacyRole InitialStep = "SURROGACY_ROLE"
	StepInterestedIn  InitialStep = "INTERESTED_IN"
	StepPairingTypes  InitialStep = "PAIRING_TYPES"
)

// InitialAnswers holds everything the role selection wizard collects.
// Answers accumulate across screens and are submitted in one request.
type InitialAnswers struct {
	TermsAccepted  bool                    `json:"termsAccepted"`
	Gender         string                  `json:"gender"`
	ServiceType    identity.ServiceType    `json:"serviceType"`
	OnboardingRole identity.OnboardingRole `json:"onboardingRole"`
	// InterestedIn is only collected on the donor services path.
	InterestedIn string   `json:"interestedIn"`
	PairingTypes []string `json:"pairingTypes"`
}

// roleStep returns the role screen for the chosen service.
func roleStep(service identity.ServiceType) InitialStep {
	if service == identity.ServiceSurrogacy {
		return StepSurrogacyRole
	}
	return StepDonorRole
}

// FirstUnanswered fast-forwards a returning user to the first screen they
// have not completed. done is true when every applicable answer is present,
// in which case the caller should move on to the six-stage wizard.
//
// The terms flag only flips when the full answer set is submitted, so it
// cannot gate resumption mid-flow: the step is computed from the collected
// answers, and terms matter only for the splash screen and the done result.
func FirstUnanswered(a InitialAnswers) (step InitialStep, done bool) {
	switch {
	case a.Gender == "":
		// Gender is the first answer collected. Without it nothing has
		// been persisted and a fresh flow opens with the splash screen.
		if a.TermsAccepted {
			return StepGender, false
		}
		return StepSplash, false
	case a.ServiceType == "":
		return StepService, false
	case a.OnboardingRole == "":
		return roleStep(a.ServiceType), false
	case a.ServiceType == identity.ServiceDonor && a.InterestedIn == "":
		return StepInterestedIn, false
	case len(a.PairingTypes) == 0:
		return StepPairingTypes, false
	case !a.TermsAccepted:
		// Everything answered but never submitted: re-land on the final
		// screen so the user can confirm and submit.
		return StepPairingTypes, false
	default:
		return "", true
	}
}

// NextStep returns the screen after current given the answers so far.
// The donor path inserts the interested-in screen; the surrogacy path skips
// straight to pairing types.
func NextStep(current InitialStep, a InitialAnswers) InitialStep {
	switch current {
	case StepSplash:
		return StepGender
	case StepGender:
		return StepService
	case StepService:
		return roleStep(a.ServiceType)
	case StepDonorRole:
		return StepInterestedIn
	case StepSurrogacyRole:
		return StepPairingTypes
	case StepInterestedIn:
		return StepPairingTypes
	default:
		return StepPairingTypes
	}
}

// ValidateAnswers checks that a full set of answers is submittable.
func ValidateAnswers(a InitialAnswers) error {
	if !a.TermsAccepted {
		return apperrors.ValidationField("termsAccepted", "You must accept the terms to continue.")
	}
	if a.Gender == "" {
		return apperrors.ValidationField("gender", "Gender is required.")
	}
	if a.ServiceType == "" {
		return apperrors.ValidationField("serviceType", "A service selection is required.")
	}
	switch a.OnboardingRole {
	case identity.RoleDonor, identity.RoleAspiringParent, identity.RoleSurrogate:
	default:
		return apperrors.ValidationField("onboardingRole", "A role selection is required.")
	}
	if a.ServiceType == identity.ServiceDonor && a.InterestedIn == "" {
		return apperrors.ValidationField("interestedIn", "An interest selection is required.")
	}
	if len(a.PairingTypes) == 0 {
		return apperrors.ValidationField("pairingTypes", "At least one pairing type is required.")
	}
	return nil
}
