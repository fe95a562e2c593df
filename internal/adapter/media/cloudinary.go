// Package media implements port.MediaUploader against the Cloudinary upload
// API. Only the upload call is used; transformations are configured on the
// CDN side.
package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

const uploadURLFormat = "https://api.cloudinary.com/v1_1/%s/image/upload"

// CloudinaryUploader pushes images to a Cloudinary account and returns their
// public URLs.
type CloudinaryUploader struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewCloudinaryUploader creates a new uploader.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) *CloudinaryUploader {
	return &CloudinaryUploader{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the image to Cloudinary using a signed request and returns
// the served URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("cloudinary: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("cloudinary: copy image: %w", err)
	}

	_ = mw.WriteField("api_key", u.apiKey)
	_ = mw.WriteField("timestamp", timestamp)
	_ = mw.WriteField("signature", u.sign(timestamp))
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("cloudinary: close form: %w", err)
	}

	url := fmt.Sprintf(uploadURLFormat, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("cloudinary: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("cloudinary: upload failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("cloudinary: decode response: %w", err)
	}
	return result.SecureURL, nil
}

// sign computes the request signature Cloudinary expects: the SHA-1 of the
// sorted parameter string with the API secret appended.
func (u *CloudinaryUploader) sign(timestamp string) string {
	sum := sha1.Sum([]byte("timestamp=" + timestamp + u.apiSecret))
	return hex.EncodeToString(sum[:])
}
