// Package thumbnail fetches video thumbnail images into memory. Fetches run
// through the coordinator's thumbnail slot like any other task; nothing is
// written to disk.
package thumbnail

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Thumbnails larger than this are rejected rather than buffered
const MaxImageBytes = 8 << 20

// Fetch retrieves the image at url. The caller controls timeouts and
// cancellation through ctx.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build thumbnail request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch thumbnail: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read thumbnail: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("thumbnail exceeds %d bytes", MaxImageBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty thumbnail response")
	}

	return data, nil
}
