package identity

// Package identity contains domain-level types for the authenticated user
// and their onboarding state. It is pure and free of framework/adapter concerns.

import "time"

// OnboardingRole is the role a user selects during initial onboarding.
type OnboardingRole string

const (
	RoleDonor          OnboardingRole = "DONOR"
	RoleAspiringParent OnboardingRole = "ASPIRING_PARENT"
	RoleSurrogate      OnboardingRole = "SURROGATE"
	RoleAdminUser      OnboardingRole = "ADMIN"
)

// ProfileStatus is the review lifecycle state of a user's profile.
type ProfileStatus string

const (
	StatusDraft         ProfileStatus = "DRAFT"
	StatusPendingReview ProfileStatus = "PENDING_REVIEW"
	StatusActive        ProfileStatus = "ACTIVE"
	StatusRejected      ProfileStatus = "REJECTED"
)

// ServiceType is the service a user selected during initial onboarding.
type ServiceType string

const (
	ServiceDonor     ServiceType = "DONOR_SERVICES"
	ServiceSurrogacy ServiceType = "SURROGACY_SERVICES"
)

// Onboarding step bounds. Steps 0 and 1 both map to the first wizard stage;
// step 6 means the profile has been submitted for review.
const (
	MinOnboardingStep = 0
	MaxOnboardingStep = 6
)

// Admin access role names recognized by the review console.
const (
	AccessRoleSuperAdmin = "Super Admin"
	AccessRoleAdmin      = "Admin"
	AccessRoleModerator  = "Moderator"
)

// Permission slugs granted to admin access roles.
const (
	PermissionViewPendingProfiles = "profiles.view_pending"
	PermissionApproveProfiles     = "profiles.approve"
	PermissionManageUsers         = "users.manage"
	PermissionViewSettings        = "settings.view"
)

// AccessRole is an administrative role with a set of permission slugs.
// Regular onboarding users have no access role.
type AccessRole struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Identity is the profile service's view of the current user, cached in the
// session and patched optimistically between refreshes.
type Identity struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	AccessRole     *AccessRole    `json:"accessRole,omitempty"`
	OnboardingRole OnboardingRole `json:"onboardingRole,omitempty"`
	TermsAccepted  bool           `json:"termsAccepted"`
	OnboardingStep int            `json:"onboardingStep"`
	ProfileStatus  ProfileStatus  `json:"profileStatus"`
	Gender         string         `json:"gender,omitempty"`
	ServiceType    ServiceType    `json:"serviceType,omitempty"`
	InterestedIn   string         `json:"interestedIn,omitempty"`
	PairingTypes   []string       `json:"pairingTypes,omitempty"`
	// RejectionReason is set by an admin when ProfileStatus is REJECTED.
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// IsAdmin reports whether the identity carries one of the recognized admin
// access roles. Admin identities bypass all onboarding gating.
func (i *Identity) IsAdmin() bool {
	if i == nil || i.AccessRole == nil {
		return false
	}
	switch i.AccessRole.Name {
	case AccessRoleSuperAdmin, AccessRoleAdmin, AccessRoleModerator:
		return true
	default:
		return false
	}
}

// HasPermission reports whether the identity holds the given permission slug.
// The Super Admin role bypasses the permission list entirely.
func (i *Identity) HasPermission(slug string) bool {
	if i == nil || i.AccessRole == nil {
		return false
	}
	if i.AccessRole.Name == AccessRoleSuperAdmin {
		return true
	}
	for _, p := range i.AccessRole.Permissions {
		if p == slug {
			return true
		}
	}
	return false
}

// NeedsInitialOnboarding reports whether the user still has to complete the
// role selection wizard.
func (i *Identity) NeedsInitialOnboarding() bool {
	if i == nil {
		return true
	}
	return !i.TermsAccepted || i.OnboardingRole == ""
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier; Token is the profile service bearer
// token replayed on upstream calls.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      Identity  `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}
