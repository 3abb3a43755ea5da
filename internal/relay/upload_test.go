package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanshadilshan/work-ora/internal/relay"
)

func TestUploadEncodesDataURI(t *testing.T) {
	var received struct {
		Buffer   string `json:"buffer"`
		PublicID string `json:"public_id"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/utils/upload", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(relay.Asset{URL: "https://cdn/a.png", PublicID: "a-1"})
	}))
	defer srv.Close()

	uploader := relay.NewHTTPUploader(srv.URL, srv.Client())
	asset, err := uploader.Upload(context.Background(), []byte("hi"), "image/png", "")
	require.NoError(t, err)
	require.Equal(t, "https://cdn/a.png", asset.URL)
	require.Equal(t, "a-1", asset.PublicID)
	require.Equal(t, "data:image/png;base64,aGk=", received.Buffer)
	require.Empty(t, received.PublicID)
}

func TestUploadSendsPriorPublicID(t *testing.T) {
	var received struct {
		PublicID string `json:"public_id"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(relay.Asset{URL: "https://cdn/b.png", PublicID: "b-2"})
	}))
	defer srv.Close()

	uploader := relay.NewHTTPUploader(srv.URL, srv.Client())
	_, err := uploader.Upload(context.Background(), []byte("hi"), "image/png", "a-1")
	require.NoError(t, err)
	require.Equal(t, "a-1", received.PublicID)
}

func TestUploadRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	uploader := relay.NewHTTPUploader(srv.URL, srv.Client())
	_, err := uploader.Upload(context.Background(), []byte("hi"), "image/png", "")
	require.Error(t, err)
}

func TestUploadRejectsIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(relay.Asset{URL: "https://cdn/c.png"})
	}))
	defer srv.Close()

	uploader := relay.NewHTTPUploader(srv.URL, srv.Client())
	_, err := uploader.Upload(context.Background(), []byte("hi"), "image/png", "")
	require.Error(t, err)
}
