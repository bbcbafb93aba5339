// Package vision uploads photos to the image-classification service. Both
// endpoints take a multipart form with a single "image" field and answer the
// usual {status, message, data} envelope; all interpretation of the photo
// happens server-side.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Error is a classification failure reported by the service, e.g. a photo
// it could not read. The message is shown to the user as-is.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type parkingCheckResponse struct {
	Status  bool                    `json:"status"`
	Message string                  `json:"message"`
	Data    *model.ParkingDetection `json:"data"`
}

// CheckParking classifies a parking-lot photo into occupancy counts.
func (c *Client) CheckParking(ctx context.Context, imagePath string) (*model.ParkingDetection, error) {
	var resp parkingCheckResponse
	if err := c.upload(ctx, "/parkingcheck", imagePath, &resp); err != nil {
		return nil, err
	}
	if !resp.Status || resp.Data == nil {
		message := resp.Message
		if message == "" {
			message = "Parking detection unsuccessful."
		}
		return nil, &Error{Message: message}
	}
	return resp.Data, nil
}

type securityCheckResponse struct {
	Status  bool                     `json:"status"`
	Message string                   `json:"message"`
	Data    *model.SecurityDetection `json:"data"`
}

// CheckSecurity classifies a photo for suspicious activity.
func (c *Client) CheckSecurity(ctx context.Context, imagePath string) (*model.SecurityDetection, error) {
	var resp securityCheckResponse
	if err := c.upload(ctx, "/securitycheck", imagePath, &resp); err != nil {
		return nil, err
	}
	if !resp.Status || resp.Data == nil {
		message := resp.Message
		if message == "" {
			message = "Security check alert unsuccessful."
		}
		return nil, &Error{Message: message}
	}
	return resp.Data, nil
}

func (c *Client) upload(ctx context.Context, path, imagePath string, out any) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(imagePath)))
	header.Set("Content-Type", MIMEForExtension(imagePath))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("image upload failed")
		return fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("path", path).
		Str("image", filepath.Base(imagePath)).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("image uploaded")

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// MIMEForExtension mirrors how the app derived the content type from the
// file name; unknown extensions fall back to jpeg.
func MIMEForExtension(imagePath string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	switch ext {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "jpg", "jpeg", "":
		return "image/jpeg"
	default:
		return "image/" + ext
	}
}
