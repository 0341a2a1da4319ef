package profileapi

// Package profileapi implements ports.ProfileService against the external
// profile REST API using bearer-token auth, JSON bodies, and multipart
// uploads for document and photo submissions.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/helix-fertility/helix-ui-api/internal/domain/identity"
	"github.com/helix-fertility/helix-ui-api/internal/domain/wizard"
	apperrors "github.com/helix-fertility/helix-ui-api/internal/errors"
	"github.com/helix-fertility/helix-ui-api/internal/ports"
)

// Options configures the profile API client.
type Options struct {
	// BaseURL is the upstream API root, e.g. "http://localhost:3001/api".
	BaseURL string
	// Timeout bounds ordinary JSON calls.
	Timeout time.Duration
	// UploadTimeout bounds multipart submissions.
	UploadTimeout time.Duration
	// MaxUploadBytes caps the combined size of attached file parts.
	MaxUploadBytes int64
	// HTTPClient overrides the default client when set (tests).
	HTTPClient *http.Client
}

// Client is a typed client for the upstream profile service.
type Client struct {
	baseURL        string
	client         *http.Client
	uploadClient   *http.Client
	maxUploadBytes int64
}

var _ ports.ProfileService = (*Client)(nil)

// NewClient constructs a profile API client from Options.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("profileapi: BaseURL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("profileapi: invalid BaseURL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	uploadTimeout := opts.UploadTimeout
	if uploadTimeout < timeout {
		uploadTimeout = timeout
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}

	client := opts.HTTPClient
	uploadClient := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
		uploadClient = &http.Client{Timeout: uploadTimeout}
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		client:         client,
		uploadClient:   uploadClient,
		maxUploadBytes: maxUpload,
	}, nil
}

// userEnvelope matches the upstream response wrapper for identity payloads.
type userEnvelope struct {
	Data struct {
		User identity.Identity `json:"user"`
	} `json:"data"`
}

// verifyEnvelope matches the verify-otp response: the bearer token plus the
// authenticated user in one body.
type verifyEnvelope struct {
	Token string `json:"token"`
	Data  struct {
		User identity.Identity `json:"user"`
	} `json:"data"`
}

// errorEnvelope matches upstream error bodies.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) FetchCurrent(ctx context.Context, token string) (identity.Identity, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/user/profile/current", token, nil)
	if err != nil {
		return identity.Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return identity.Identity{}, c.mapError(resp)
	}

	var env userEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return identity.Identity{}, apperrors.Wrap(decodeErr, apperrors.ErrCodeInternal, "decode current profile")
	}
	return env.Data.User, nil
}

func (c *Client) RequestOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}
	return nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (ports.VerifyResult, error) {
	body := map[string]string{"email": email, "otp": otp}
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", "", body)
	if err != nil {
		return ports.VerifyResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.VerifyResult{}, c.mapError(resp)
	}

	var env verifyEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return ports.VerifyResult{}, apperrors.Wrap(decodeErr, apperrors.ErrCodeInternal, "decode verify response")
	}
	if env.Token == "" {
		return ports.VerifyResult{}, apperrors.Internal("verify response missing token")
	}
	return ports.VerifyResult{Token: env.Token, User: env.Data.User}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}
	return nil
}

func (c *Client) SubmitInitialOnboarding(ctx context.Context, token string, answers wizard.InitialAnswers) error {
	resp, err := c.doJSON(ctx, http.MethodPut, "/user/profile/onboarding", token, answers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}
	return nil
}

func (c *Client) FetchStageDraft(ctx context.Context, token string, stage int, slug string) ([]byte, error) {
	path := fmt.Sprintf("/user/profile/stage-%d/%s", stage, slug)
	resp, err := c.doJSON(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp)
	}

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, apperrors.Wrap(readErr, apperrors.ErrCodeInternal, "read stage draft")
	}
	return raw, nil
}

// stageBody is the JSON body for a stage submission without file parts.
type stageBody struct {
	Data       any  `json:"data"`
	IsComplete bool `json:"isComplete"`
}

func (c *Client) SubmitStage(ctx context.Context, token string, sub ports.StageSubmission) error {
	path := fmt.Sprintf("/user/profile/stage-%d/%s", sub.Stage, sub.Slug)

	var resp *http.Response
	var err error
	if len(sub.Files) > 0 {
		resp, err = c.doMultipart(ctx, path, token, sub)
	} else {
		resp, err = c.doJSON(ctx, http.MethodPost, path, token, stageBody{Data: sub.Payload, IsComplete: sub.IsComplete})
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}
	return nil
}

func (c *Client) CompleteFinalStage(ctx context.Context, token string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/user/profile/stage-6/complete", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}
	return nil
}

// pendingEnvelope matches the admin pending-profiles response.
type pendingEnvelope struct {
	Data struct {
		Profiles []identity.Identity `json:"profiles"`
	} `json:"data"`
}

func (c *Client) PendingProfiles(ctx context.Context, token string) ([]identity.Identity, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/user/profile/admin/pending", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp)
	}

	var env pendingEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return nil, apperrors.Wrap(decodeErr, apperrors.ErrCodeInternal, "decode pending profiles")
	}
	return env.Data.Profiles, nil
}

func (c *Client) ReviewProfile(ctx context.Context, token, userID string, decision ports.ReviewDecision) error {
	body := map[string]string{
		"status": string(decision.Status),
		"reason": decision.Reason,
	}
	path := "/user/profile/admin/approve/" + url.PathEscape(userID)
	resp, err := c.doJSON(ctx, http.MethodPatch, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}
	return nil
}

// doJSON issues a JSON request. A nil body sends no payload.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "marshal request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.mapTransportError(err)
	}
	return resp, nil
}

// doMultipart issues a multipart stage submission: a "data" field with the
// JSON payload, an "isComplete" field, and one part per attached file.
func (c *Client) doMultipart(ctx context.Context, path, token string, sub ports.StageSubmission) (*http.Response, error) {
	var total int64
	for _, f := range sub.Files {
		total += int64(len(f.Content))
	}
	if total > c.maxUploadBytes {
		return nil, apperrors.ValidationField("files", fmt.Sprintf("Uploads exceed the %d byte limit.", c.maxUploadBytes))
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	payload, err := json.Marshal(sub.Payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "marshal stage payload")
	}
	if writeErr := mw.WriteField("data", string(payload)); writeErr != nil {
		return nil, apperrors.Wrap(writeErr, apperrors.ErrCodeInternal, "write data field")
	}
	if writeErr := mw.WriteField("isComplete", strconv.FormatBool(sub.IsComplete)); writeErr != nil {
		return nil, apperrors.Wrap(writeErr, apperrors.ErrCodeInternal, "write isComplete field")
	}

	for _, f := range sub.Files {
		part, partErr := mw.CreateFormFile(f.Field, f.Filename)
		if partErr != nil {
			return nil, apperrors.Wrap(partErr, apperrors.ErrCodeInternal, "create file part")
		}
		if _, copyErr := part.Write(f.Content); copyErr != nil {
			return nil, apperrors.Wrap(copyErr, apperrors.ErrCodeInternal, "write file part")
		}
	}
	if closeErr := mw.Close(); closeErr != nil {
		return nil, apperrors.Wrap(closeErr, apperrors.ErrCodeInternal, "finish multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, c.mapTransportError(err)
	}
	return resp, nil
}

// mapTransportError converts client/transport failures into the taxonomy.
func (c *Client) mapTransportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "profile service timed out")
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "profile service call canceled")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "profile service unreachable")
	}
}

// mapError converts a non-2xx upstream response into the taxonomy. The
// upstream message is surfaced verbatim when present so the client can show
// the server's reason.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var env errorEnvelope
	message := ""
	if json.Unmarshal(raw, &env) == nil {
		if env.Message != "" {
			message = env.Message
		} else if env.Error != "" {
			message = env.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if message == "" {
			message = "Your session has expired. Please sign in again."
		}
		return apperrors.Auth(message)
	case http.StatusNotFound:
		if message == "" {
			message = "Resource not found"
		}
		return apperrors.NotFound(message)
	default:
		if message == "" {
			message = fmt.Sprintf("The profile service returned status %d.", resp.StatusCode)
		}
		return apperrors.Submission(message)
	}
}
