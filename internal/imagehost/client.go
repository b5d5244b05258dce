package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"studentmart-be/internal/logger"

	"go.uber.org/zap"
)

var ErrUploadFailed = errors.New("image upload failed")

// Uploader pushes product images to the external image host and returns
// the public URL to store on the product record.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type client struct {
	uploadURL  string
	preset     string
	httpClient *http.Client
}

// NewClient builds an unsigned-upload client. The preset is configured
// host-side and scopes what anonymous uploads are allowed to do.
func NewClient(uploadURL, preset string) Uploader {
	if uploadURL == "" {
		logger.L().Warn("image upload URL is empty, uploads will fail")
	}

	return &client{
		uploadURL: uploadURL,
		preset:    preset,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func (c *client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "imagehost"),
		zap.String("filename", filename),
	)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.WriteField("upload_preset", c.preset); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.uploadURL, &buf)
	if err != nil {
		log.Error("failed creating upload request", zap.Error(err))
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("image host request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("image host returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var res uploadResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding upload response", zap.Error(err))
		return "", err
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("%w: response carried no secure_url", ErrUploadFailed)
	}

	log.Info("image uploaded",
		zap.String("public_id", res.PublicID),
	)
	return res.SecureURL, nil
}
