// Package classifier calls the external region classification service:
// an image goes in, a region label and a confidence come out. The
// classifier's internals (model, architecture) are not this service's
// concern.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/tourgether/tourgether/internal/domain"
)

// Detection is the classifier's answer for one image.
type Detection struct {
	Region     string  `json:"region"`
	Confidence float64 `json:"confidence"`
}

// Client talks to the region classifier over HTTP. A nil Client (or one
// with an empty base URL) reports the classifier as unavailable.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a classifier client. An empty baseURL yields a client
// whose calls fail with ErrClassifierUnavailable, which the transport
// maps to 503.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Available reports whether the classifier is configured.
func (c *Client) Available() bool {
	return c != nil && c.baseURL != ""
}

// Classify uploads the image and returns the detected region label with
// its confidence in [0, 1].
func (c *Client) Classify(ctx context.Context, filename string, image io.Reader) (Detection, error) {
	if !c.Available() {
		return Detection{}, domain.ErrClassifierUnavailable
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return Detection{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return Detection{}, fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Detection{}, fmt.Errorf("close form: %w", err)
	}

	u, err := url.JoinPath(c.baseURL, "classify")
	if err != nil {
		return Detection{}, fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return Detection{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Detection{}, fmt.Errorf("%w: classifier returned status %d",
			domain.ErrClassifierUnavailable, resp.StatusCode)
	}

	var det Detection
	if err := json.NewDecoder(resp.Body).Decode(&det); err != nil {
		return Detection{}, fmt.Errorf("decode classifier response: %w", err)
	}
	if det.Confidence < 0 || det.Confidence > 1 {
		return Detection{}, fmt.Errorf("classifier confidence %f outside [0, 1]", det.Confidence)
	}
	return det, nil
}
