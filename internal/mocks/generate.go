// Package mocks provides mock implementations for testing the helix gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockProfile := profile.NewMockProfileService(ctrl)
//	mockProfile.EXPECT().FetchCurrent(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for ProfileService interface from internal/ports.
// This creates MockProfileService with methods for all ProfileService interface methods:
// FetchCurrent, RequestOTP, VerifyOTP, Logout, SubmitInitialOnboarding,
// FetchStageDraft, SubmitStage, CompleteFinalStage, PendingProfiles, ReviewProfile
//go:generate go run go.uber.org/mock/mockgen -package=profile -destination=profile/profile_service_mock.go github.com/helix-fertility/helix-ui-api/internal/ports ProfileService

// Generate mock for AuditRecorder interface from internal/ports.
// This creates MockAuditRecorder with methods for all AuditRecorder interface methods:
// RecordStageSubmission, RecordReviewDecision, ListStageSubmissions, ListReviewDecisions
//go:generate go run go.uber.org/mock/mockgen -package=profile -destination=profile/audit_recorder_mock.go github.com/helix-fertility/helix-ui-api/internal/ports AuditRecorder
