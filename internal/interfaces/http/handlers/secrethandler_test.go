package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/application/secret/usecases"
	"github.com/voidlabs/void/internal/interfaces/http/handlers/testutil"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

type mockCreateSecretUC struct {
	result *dto.SecretResponse
	err    error
	gotCmd usecases.CreateSecretCommand
}

func (m *mockCreateSecretUC) Execute(ctx context.Context, cmd usecases.CreateSecretCommand) (*dto.SecretResponse, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockPullSecretUC struct {
	result *usecases.PullSecretResult
	err    error
}

func (m *mockPullSecretUC) Execute(ctx context.Context, query usecases.PullSecretQuery) (*usecases.PullSecretResult, error) {
	return m.result, m.err
}

type mockReleaseSecretUC struct {
	err error
}

func (m *mockReleaseSecretUC) Execute(ctx context.Context, cmd usecases.ReleaseSecretCommand) error {
	return m.err
}

type mockListRepliesUC struct {
	result   *dto.ReplyListResponse
	err      error
	gotQuery usecases.ListRepliesQuery
}

func (m *mockListRepliesUC) Execute(ctx context.Context, query usecases.ListRepliesQuery) (*dto.ReplyListResponse, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockEchoOptInUC struct {
	result *usecases.EchoOptInResult
	err    error
}

func (m *mockEchoOptInUC) Execute(ctx context.Context, cmd usecases.EchoOptInCommand) (*usecases.EchoOptInResult, error) {
	return m.result, m.err
}

func newTestSecretHandler(
	createUC secretCreator,
	pullUC secretPuller,
	releaseUC secretReleaser,
	listUC replyLister,
	optInUC echoOptIn,
) *SecretHandler {
	return NewSecretHandler(createUC, pullUC, releaseUC, listUC, optInUC, logger.NewLogger())
}

func TestSecretHandler_Create_Success(t *testing.T) {
	mockUC := &mockCreateSecretUC{result: &dto.SecretResponse{ID: "secret-1", Content: "hello", CreatedAt: time.Now()}}
	handler := newTestSecretHandler(mockUC, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets", map[string]any{"content": "hello"})
	testutil.SetSessionContext(c, "session-1")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "session-1", mockUC.gotCmd.SessionID)

	var resp dto.SecretResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "secret-1", resp.ID)
}

func TestSecretHandler_Create_ContentMustBeString(t *testing.T) {
	handler := newTestSecretHandler(&mockCreateSecretUC{}, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets", map[string]any{"content": 42})
	testutil.SetSessionContext(c, "session-1")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSecretHandler_Create_MissingContent(t *testing.T) {
	handler := newTestSecretHandler(&mockCreateSecretUC{}, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets", map[string]any{})
	testutil.SetSessionContext(c, "session-1")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body testutil.ErrorBody
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "content must be a string.", body.Error)
}

func TestSecretHandler_Create_InvalidDeliverAt(t *testing.T) {
	handler := newTestSecretHandler(&mockCreateSecretUC{}, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets", map[string]any{
		"content":   "hello",
		"deliverAt": "tomorrow",
	})
	testutil.SetSessionContext(c, "session-1")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body testutil.ErrorBody
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "deliverAt is invalid.", body.Error)
}

func TestSecretHandler_Create_UseCaseError(t *testing.T) {
	mockUC := &mockCreateSecretUC{err: errors.NewConflictError("Duplicate secret detected in the last 5 minutes.")}
	handler := newTestSecretHandler(mockUC, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets", map[string]any{"content": "hello"})
	testutil.SetSessionContext(c, "session-1")

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSecretHandler_Pull_Empty(t *testing.T) {
	mockUC := &mockPullSecretUC{result: &usecases.PullSecretResult{Empty: true}}
	handler := newTestSecretHandler(nil, mockUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/secrets/random", nil)
	testutil.SetSessionContext(c, "session-1")

	handler.Pull(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Empty   bool   `json:"empty"`
		Message string `json:"message"`
	}
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.True(t, body.Empty)
	assert.Equal(t, "Le vide est silencieux.", body.Message)
}

func TestSecretHandler_Pull_ReturnsSecret(t *testing.T) {
	mockUC := &mockPullSecretUC{result: &usecases.PullSecretResult{
		Secret: &dto.SecretResponse{ID: "secret-1", Content: "a confession"},
	}}
	handler := newTestSecretHandler(nil, mockUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/secrets/random", nil)
	testutil.SetSessionContext(c, "session-1")

	handler.Pull(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SecretResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "secret-1", resp.ID)
	assert.Nil(t, resp.AuthorSessionID)
}

func TestSecretHandler_Release(t *testing.T) {
	handler := newTestSecretHandler(nil, nil, &mockReleaseSecretUC{}, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets/secret-1/release", nil)
	testutil.SetSessionContext(c, "session-1")
	testutil.SetURLParam(c, "id", "secret-1")

	handler.Release(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.True(t, body.OK)
}

func TestSecretHandler_Release_NotHolder(t *testing.T) {
	mockUC := &mockReleaseSecretUC{err: errors.NewNotFoundError("Secret not found or session mismatch.")}
	handler := newTestSecretHandler(nil, nil, mockUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets/secret-1/release", nil)
	testutil.SetSessionContext(c, "stranger")
	testutil.SetURLParam(c, "id", "secret-1")

	handler.Release(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSecretHandler_ListReplies_PassesToken(t *testing.T) {
	mockUC := &mockListRepliesUC{result: &dto.ReplyListResponse{SecretID: "secret-1"}}
	handler := newTestSecretHandler(nil, nil, nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/secrets/secret-1/replies", nil)
	testutil.SetSessionContext(c, "session-1")
	testutil.SetURLParam(c, "id", "secret-1")
	testutil.SetQueryParams(c, map[string]string{"t": "token-abc"})

	handler.ListReplies(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-abc", mockUC.gotQuery.AccessToken)
	assert.Equal(t, "secret-1", mockUC.gotQuery.SecretID)
}

func TestSecretHandler_EchoOptIn_MissingEnabled(t *testing.T) {
	handler := newTestSecretHandler(nil, nil, nil, nil, &mockEchoOptInUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets/secret-1/echo-opt-in", map[string]any{
		"pushToken": "relay-token",
	})
	testutil.SetSessionContext(c, "session-1")
	testutil.SetURLParam(c, "id", "secret-1")

	handler.EchoOptIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body testutil.ErrorBody
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "enabled must be a boolean.", body.Error)
}

func TestSecretHandler_EchoOptIn_Success(t *testing.T) {
	mockUC := &mockEchoOptInUC{result: &usecases.EchoOptInResult{Enabled: true}}
	handler := newTestSecretHandler(nil, nil, nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodPost, "/secrets/secret-1/echo-opt-in", map[string]any{
		"enabled":   true,
		"pushToken": "relay-token",
	})
	testutil.SetSessionContext(c, "session-1")
	testutil.SetURLParam(c, "id", "secret-1")

	handler.EchoOptIn(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK      bool `json:"ok"`
		Enabled bool `json:"enabled"`
	}
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.True(t, body.OK)
	assert.True(t, body.Enabled)
}
