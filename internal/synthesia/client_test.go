package synthesia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresCredential(t *testing.T) {
	t.Setenv("SYNTHESIA_API_KEY", "")

	_, err := NewClient("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNTHESIA_API_KEY")
}

func TestNewClient_EnvFallback(t *testing.T) {
	t.Setenv("SYNTHESIA_API_KEY", "env-key")

	client, err := NewClient("", "")
	require.NoError(t, err)
	assert.Equal(t, "env-key", client.apiKey)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestCreateVideo_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.Equal(t, http.MethodPost, r.Method)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "vid_123", "status": "in_progress", "createdAt": 1700000000}`))
	}))
	defer server.Close()

	client, err := NewClient("fakekey", server.URL)
	require.NoError(t, err)

	resp, err := client.CreateVideo(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "/videos", gotPath)
	assert.Equal(t, "fakekey", gotAuth)
	assert.Equal(t, "Demo Video", gotBody["title"])
	assert.Equal(t, "9:16", gotBody["aspectRatio"])
	scenes := gotBody["input"].([]any)
	assert.Equal(t, "Hello, world!", scenes[0].(map[string]any)["scriptText"])

	assert.Equal(t, "vid_123", resp.ID)
	assert.Equal(t, "in_progress", resp.Status)
	require.NotNil(t, resp.CreatedAt)
}

func TestCreateVideo_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer server.Close()

	client, err := NewClient("fakekey", server.URL)
	require.NoError(t, err)

	_, err = client.CreateVideo(context.Background(), validRequest())
	require.Error(t, err)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Contains(t, svcErr.Body, "bad request")
}

func TestCreateVideo_InvalidRequestRejectedBeforeCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer server.Close()

	client, err := NewClient("fakekey", server.URL)
	require.NoError(t, err)

	req := validRequest()
	req.Title = ""
	_, err = client.CreateVideo(context.Background(), req)
	require.Error(t, err)
	assert.Zero(t, calls, "validation failure must not reach the network")
}

func TestCreateVideoFromTemplate_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id": "vid_tpl", "status": "in_progress"}`))
	}))
	defer server.Close()

	client, err := NewClient("fakekey", server.URL)
	require.NoError(t, err)

	req := &CreateVideoFromTemplateRequest{
		Test:         true,
		TemplateID:   "tpl-1",
		TemplateData: TemplateData{Screenplay: "INT. KITCHEN - MORNING"},
		Visibility:   "private",
		Title:        "Templated",
	}
	resp, err := client.CreateVideoFromTemplate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/videos/fromTemplate", gotPath)
	assert.Equal(t, "tpl-1", gotBody["templateId"])
	assert.Equal(t, "vid_tpl", resp.ID)
}

func TestGetVideoStatus_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/videos/vid_123", r.URL.Path)
		require.Equal(t, "fakekey", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": "vid_123", "status": "complete"}`))
	}))
	defer server.Close()

	client, err := NewClient("fakekey", server.URL)
	require.NoError(t, err)

	status, err := client.GetVideoStatus(context.Background(), "vid_123")
	require.NoError(t, err)
	assert.Equal(t, "vid_123", status.ID)
	assert.Equal(t, "complete", status.Status)
}

func TestGetVideoStatus_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient("fakekey", server.URL)
	require.NoError(t, err)

	_, err = client.GetVideoStatus(context.Background(), "missing")
	require.Error(t, err)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}
