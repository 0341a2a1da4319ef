package wizard

import (
	"time"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
)

// dobLayout is the wire format for dates of birth.
const dobLayout = "2006-01-02"

const (
	minAgeYears = 18
	maxAgeYears = 100
)

// BasicsDraft is the stage-1 draft. Sub-steps: personal details, contact
// details, identity document, photos. Uploaded files travel out of band as
// multipart parts; the counts here let validation know what is attached.
type BasicsDraft struct {
	LegalName   string `json:"legalName"`
	DOB         string `json:"dob"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`

	// SavedPhotoCount is how many photos the upstream draft already holds;
	// NewPhotoCount is how many are attached to this request.
	SavedPhotoCount int `json:"savedPhotoCount"`
	NewPhotoCount   int `json:"newPhotoCount"`
}

// ValidateSubStep checks the required fields for one basics screen.
func (d BasicsDraft) ValidateSubStep(subStep int) error {
	switch subStep {
	case 0:
		if d.LegalName == "" {
			return apperrors.ValidationField("legalName", "Full legal name is required.")
		}
		return validateDOB(d.DOB)
	case 1:
		if d.Email == "" {
			return apperrors.ValidationField("email", "Email is required.")
		}
		return nil
	case 3:
		if d.SavedPhotoCount == 0 && d.NewPhotoCount == 0 {
			return apperrors.ValidationField("photos", "At least one photo is required.")
		}
		return nil
	default:
		return nil
	}
}

func validateDOB(dob string) error {
	if dob == "" {
		return apperrors.ValidationField("dob", "Date of birth is required.")
	}
	parsed, err := time.Parse(dobLayout, dob)
	if err != nil {
		return apperrors.ValidationField("dob", "Date of birth must be in YYYY-MM-DD format.")
	}
	now := time.Now()
	if parsed.After(now.AddDate(-minAgeYears, 0, 0)) {
		return apperrors.ValidationField("dob", "You must be at least 18 years old.")
	}
	if parsed.Before(now.AddDate(-maxAgeYears, 0, 0)) {
		return apperrors.ValidationField("dob", "Date of birth is out of range.")
	}
	return nil
}

// BackgroundDraft is the stage-2 draft. Sub-steps: physical attributes,
// background, bio.
type BackgroundDraft struct {
	HeightCm    float64 `json:"height"`
	WeightKg    float64 `json:"weight"`
	BodyBuild   string  `json:"bodyBuild"`
	HairColor   string  `json:"hairColor"`
	EyeColor    string  `json:"eyeColor"`
	Race        string  `json:"race"`
	Orientation string  `json:"orientation"`
	Education   string  `json:"education"`
	Occupation  string  `json:"occupation"`
	Nationality string  `json:"nationality"`
	Diet        string  `json:"diet"`
	Bio         string  `json:"bio"`
}

// ValidateSubStep checks the required fields for one background screen.
func (d BackgroundDraft) ValidateSubStep(subStep int) error {
	if subStep == 1 {
		if d.Education == "" {
			return apperrors.ValidationField("education", "Education is required.")
		}
		if d.Occupation == "" {
			return apperrors.ValidationField("occupation", "Occupation is required.")
		}
	}
	return nil
}

// ValidateSubmit applies the conditional rules checked when the stage is
// submitted. Height and weight are mandatory for surrogacy profiles only.
func (d BackgroundDraft) ValidateSubmit(serviceType identity.ServiceType) error {
	if serviceType == identity.ServiceSurrogacy {
		if d.HeightCm <= 0 {
			return apperrors.ValidationField("height", "Height is required for surrogacy profiles.")
		}
		if d.WeightKg <= 0 {
			return apperrors.ValidationField("weight", "Weight is required for surrogacy profiles.")
		}
	}
	return nil
}

// HealthDraft is the stage-3 draft. Sub-steps: chronic conditions,
// surgeries and medication, reproductive health, lifestyle. All fields are
// declarative booleans; nothing is required.
type HealthDraft struct {
	HasDiabetes       bool `json:"hasDiabetes"`
	HasHypertension   bool `json:"hasHypertension"`
	HasHeartCondition bool `json:"hasHeartCondition"`
	HasCancerHistory  bool `json:"hasCancerHistory"`

	HadSurgeries    bool `json:"hadSurgeries"`
	TakesMedication bool `json:"takesMedication"`

	HasReproductiveIssues bool `json:"hasReproductiveIssues"`
	HasSTIHistory         bool `json:"hasStiHistory"`

	Smokes        bool `json:"smokes"`
	DrinksAlcohol bool `json:"drinksAlcohol"`
	UsesDrugs     bool `json:"usesDrugs"`
	ZikaRisk      bool `json:"zikaRisk"`
}

// GeneticDraft is the stage-4 draft. A single screen: known conditions plus
// an optional genetic report upload (multipart, tracked by flag).
type GeneticDraft struct {
	Conditions       []string `json:"conditions"`
	HasGeneticReport bool     `json:"hasGeneticReport"`
}

// CompensationDraft is the stage-5 draft, a single screen.
type CompensationDraft struct {
	IsInterested     bool    `json:"isInterested"`
	AllowBidding     bool    `json:"allowBidding"`
	AskingPrice      float64 `json:"askingPrice"`
	MinAcceptedPrice float64 `json:"minAcceptedPrice"`
	BuyNowPrice      float64 `json:"buyNowPrice"`
}

// ValidateSubmit requires a floor price only when bidding is enabled.
func (d CompensationDraft) ValidateSubmit() error {
	if d.IsInterested && d.AllowBidding && d.MinAcceptedPrice <= 0 {
		return apperrors.ValidationField("minAcceptedPrice", "A minimum accepted price is required when bidding is enabled.")
	}
	return nil
}

// LegalDraft is the stage-6 draft, a single consent screen.
type LegalDraft struct {
	ConsentAgreed       bool   `json:"consentAgreed"`
	AnonymityPreference string `json:"anonymityPreference"`
}

// ValidateSubmit requires explicit consent before the profile is completed.
func (d LegalDraft) ValidateSubmit() error {
	if !d.ConsentAgreed {
		return apperrors.ValidationField("consentAgreed", "You must agree to the consent terms to continue.")
	}
	return nil
}
