package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/domain"
)

const downloadTimeout = 5 * time.Minute

// FetchArtifacts downloads any corpus artifact missing from dir from
// baseURL. Already-present files are kept, which makes startup after a
// restart cheap. The loader then reads local and downloaded artifacts
// identically.
func FetchArtifacts(ctx context.Context, baseURL, dir string, logger *zap.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}

	client := &http.Client{Timeout: downloadTimeout}

	for _, d := range domain.Domains() {
		for _, name := range []string{RecordsFile(d), EmbeddingsFile(d)} {
			dest := filepath.Join(dir, name)
			if fileExists(dest) {
				logger.Debug("Artifact already present", zap.String("file", name))
				continue
			}
			if err := downloadFile(ctx, client, baseURL, name, dest); err != nil {
				return fmt.Errorf("download %s: %w", name, err)
			}
			logger.Info("Artifact downloaded", zap.String("file", name))
		}
	}
	return nil
}

func downloadFile(ctx context.Context, client *http.Client, baseURL, name, dest string) error {
	u, err := url.JoinPath(baseURL, name)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}

	// Write to a temp file first so a partial download never looks like
	// a valid artifact to the loader.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move artifact into place: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
