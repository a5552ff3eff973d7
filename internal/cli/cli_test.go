package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/progress"
	"github.com/phinix/phinix-downloader/internal/resolver"
)

type stubResolver struct {
	extract  func(ctx context.Context, url string) (model.VideoMetadata, error)
	download func(ctx context.Context, url string, opts resolver.DownloadOptions, fn resolver.ProgressFunc) (string, error)
}

func (s *stubResolver) ExtractMetadata(ctx context.Context, url string) (model.VideoMetadata, error) {
	return s.extract(ctx, url)
}

func (s *stubResolver) Download(ctx context.Context, url string, opts resolver.DownloadOptions, fn resolver.ProgressFunc) (string, error) {
	return s.download(ctx, url, opts, fn)
}

func newTestApp(res resolver.Resolver) (*AppContext, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := &AppContext{
		Build:    BuildInfo{Version: "test"},
		IO:       IOStreams{Out: out, ErrOut: out},
		Resolver: res,
	}
	return app, out
}

func TestFetchCommand(t *testing.T) {
	res := &stubResolver{
		extract: func(ctx context.Context, url string) (model.VideoMetadata, error) {
			return model.VideoMetadata{
				Title:           "T",
				DurationSeconds: 125,
				Uploader:        "U",
				ViewCount:       1500,
				ThumbnailURL:    "https://x/thumb.jpg",
			}, nil
		},
	}
	app, out := newTestApp(res)

	root := newRootCommand(app)
	root.SetArgs([]string{"fetch", "https://example.com/watch?v=abc"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	output := out.String()
	for _, want := range []string{"Title:     T", "Uploader:  U", "Duration:  02:05", "Views:     1,500", "https://x/thumb.jpg"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFetchCommandResolverError(t *testing.T) {
	res := &stubResolver{
		extract: func(ctx context.Context, url string) (model.VideoMetadata, error) {
			return model.VideoMetadata{}, errors.New("Unsupported URL")
		},
	}
	app, _ := newTestApp(res)

	root := newRootCommand(app)
	root.SetArgs([]string{"fetch", "https://example.com/nope"})
	err := root.Execute()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Unsupported URL") {
		t.Errorf("Expected resolver message, got %q", err.Error())
	}
}

func TestDownloadCommand(t *testing.T) {
	res := &stubResolver{
		download: func(ctx context.Context, url string, opts resolver.DownloadOptions, fn resolver.ProgressFunc) (string, error) {
			if opts.FormatSelector != "best" {
				t.Errorf("Expected format selector best, got %q", opts.FormatSelector)
			}
			fn(progress.RawEvent{Status: progress.StatusDownloading, DownloadedBytes: 50, TotalBytes: 100, ETASeconds: -1})
			fn(progress.RawEvent{Status: progress.StatusFinished, Filename: "/tmp/out.mp4", ETASeconds: -1})
			return "/tmp/out.mp4", nil
		},
	}
	app, out := newTestApp(res)

	root := newRootCommand(app)
	root.SetArgs([]string{"download", "https://example.com/watch?v=abc", "-o", t.TempDir(), "-f", "best"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(out.String(), "Saved out to /tmp/out.mp4") {
		t.Errorf("Expected saved title and path in output, got:\n%s", out.String())
	}
}

func TestDownloadCommandRevealFlag(t *testing.T) {
	res := &stubResolver{
		download: func(ctx context.Context, url string, opts resolver.DownloadOptions, fn resolver.ProgressFunc) (string, error) {
			return "/tmp/out.mp4", nil
		},
	}
	app, _ := newTestApp(res)

	revealed := ""
	app.Reveal = func(path string) error {
		revealed = path
		return nil
	}

	root := newRootCommand(app)
	root.SetArgs([]string{"download", "https://example.com/watch?v=abc", "-o", t.TempDir(), "--reveal"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if revealed != "/tmp/out.mp4" {
		t.Errorf("Expected file manager opened on /tmp/out.mp4, got %q", revealed)
	}
}

func TestDownloadCommandNoRevealByDefault(t *testing.T) {
	res := &stubResolver{
		download: func(ctx context.Context, url string, opts resolver.DownloadOptions, fn resolver.ProgressFunc) (string, error) {
			return "/tmp/out.mp4", nil
		},
	}
	app, _ := newTestApp(res)
	app.Reveal = func(path string) error {
		t.Errorf("Unexpected reveal of %q without --reveal", path)
		return nil
	}

	root := newRootCommand(app)
	root.SetArgs([]string{"download", "https://example.com/watch?v=abc", "-o", t.TempDir()})
	if err := root.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestDownloadCommandEmptyURL(t *testing.T) {
	app, _ := newTestApp(&stubResolver{})

	root := newRootCommand(app)
	root.SetArgs([]string{"download", "", "-o", t.TempDir()})
	if err := root.Execute(); err == nil {
		t.Fatal("Expected error for empty URL, got nil")
	}
}

func TestVersionFlag(t *testing.T) {
	app, out := newTestApp(&stubResolver{})

	root := newRootCommand(app)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "phinixdl test") {
		t.Errorf("Expected version output, got %q", out.String())
	}
}
