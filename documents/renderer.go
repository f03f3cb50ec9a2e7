package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// Renderer produces a rendered document from a template id and merge data.
// Rendering itself is owned by an external document-generation service.
type Renderer interface {
	Render(ctx context.Context, templateID string, payload interface{}) ([]byte, error)
}

const renderAttempts = 3

// HTTPRenderer calls the document-generation service over HTTP
type HTTPRenderer struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRenderer returns a renderer pointed at the given base URL
func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Render posts the merge payload and returns the rendered bytes. Server-side
// failures are retried, client errors are not.
func (h *HTTPRenderer) Render(ctx context.Context, templateID string, payload interface{}) ([]byte, error) {
	body := map[string]interface{}{
		"templateId": templateID,
		"data":       payload,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var rendered []byte
	err = retry.Do(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/render", bytes.NewReader(raw))
			if reqErr != nil {
				return retry.Unrecoverable(reqErr)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, doErr := h.Client.Do(req)
			if doErr != nil {
				return doErr
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("renderer returned status %d", resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("renderer rejected template %s with status %d", templateID, resp.StatusCode))
			}

			rendered, doErr = io.ReadAll(resp.Body)
			return doErr
		},
		retry.Attempts(renderAttempts),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		zap.S().Errorw("document render failed",
			"templateId", templateID,
			"error", err,
		)
		return nil, err
	}
	return rendered, nil
}
