// Package relay holds the adapters for the two external collaborators:
// the upload service storing binary assets and the mail queue carrying
// notification envelopes.
package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Asset is the stored-file reference returned by the upload service.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader stores a raw file and returns its asset reference. When
// priorID is non-empty the previous asset is deleted first.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, priorID string) (Asset, error)
}

// HTTPUploader is the default Uploader, proxying to the upload service.
type HTTPUploader struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPUploader constructs the default Uploader.
func NewHTTPUploader(baseURL string, client *http.Client) *HTTPUploader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPUploader{baseURL: baseURL, httpClient: client}
}

type uploadRequest struct {
	Buffer   string `json:"buffer"`
	PublicID string `json:"public_id,omitempty"`
}

// Upload posts the file as a base64 data URI.
func (u *HTTPUploader) Upload(ctx context.Context, data []byte, contentType, priorID string) (Asset, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	payload, err := json.Marshal(uploadRequest{
		Buffer:   fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)),
		PublicID: priorID,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("encode upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/api/utils/upload", bytes.NewReader(payload))
	if err != nil {
		return Asset{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Asset{}, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return Asset{}, fmt.Errorf("upload failed: status=%d", resp.StatusCode)
	}

	var asset Asset
	if err := json.Unmarshal(body, &asset); err != nil {
		return Asset{}, fmt.Errorf("decode upload response: %w", err)
	}
	if asset.URL == "" || asset.PublicID == "" {
		return Asset{}, fmt.Errorf("upload response missing url or public_id")
	}
	return asset, nil
}
