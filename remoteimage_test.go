package mdpdf

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testDownloaderConfig() RemoteImageConfig {
	config := DefaultRemoteImageConfig()
	config.Timeout = 5 * time.Second
	return config
}

func TestRemoteImageDownloader_Download(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	}))
	defer server.Close()

	downloader := NewRemoteImageDownloader(testDownloaderConfig())
	outDir := t.TempDir()

	assetPath, err := downloader.Download(server.URL+"/logo", outDir, "doc-remote-000")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if assetPath != filepath.Join(outDir, "doc-remote-000.png") {
		t.Errorf("asset path = %q, want .png from content type", assetPath)
	}
	if gotUserAgent != "markdown-to-pdf/1.0" {
		t.Errorf("User-Agent = %q", gotUserAgent)
	}
}

func TestRemoteImageDownloader_ExtensionFromURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No usable content type.
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	downloader := NewRemoteImageDownloader(testDownloaderConfig())

	assetPath, err := downloader.Download(server.URL+"/images/logo.svg", t.TempDir(), "x")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if !strings.HasSuffix(assetPath, "x.svg") {
		t.Errorf("asset path = %q, want .svg from URL", assetPath)
	}
}

func TestRemoteImageDownloader_HTTPErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	downloader := NewRemoteImageDownloader(testDownloaderConfig())

	_, err := downloader.Download(server.URL+"/missing.png", t.TempDir(), "x")
	if !errors.Is(err, ErrRemoteFetch) {
		t.Fatalf("error = %v, want ErrRemoteFetch", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want HTTP status in message", err)
	}
}

func TestRemoteImageDownloader_ConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	downloader := NewRemoteImageDownloader(testDownloaderConfig())

	_, err := downloader.Download(url+"/logo.png", t.TempDir(), "x")
	if !errors.Is(err, ErrRemoteFetch) {
		t.Errorf("error = %v, want ErrRemoteFetch", err)
	}
}

func TestRemoteImageDownloader_DisabledRefuses(t *testing.T) {
	t.Parallel()

	config := testDownloaderConfig()
	config.Enabled = false
	downloader := NewRemoteImageDownloader(config)

	if downloader.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	_, err := downloader.Download("https://example.test/x.png", t.TempDir(), "x")
	if !errors.Is(err, ErrRemoteFetch) {
		t.Errorf("error = %v, want ErrRemoteFetch", err)
	}
}

func TestResolveExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		url         string
		contentType string
		want        string
	}{
		{"svg content type", "https://a.test/x", "image/svg+xml", ".svg"},
		{"url extension fallback", "https://a.test/pic.jpeg", "", ".jpeg"},
		{"query string ignored", "https://a.test/pic.gif?size=2", "", ".gif"},
		{"png default", "https://a.test/no-extension", "", ".png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveExtension(tt.url, tt.contentType); got != tt.want {
				t.Errorf("resolveExtension(%q, %q) = %q, want %q", tt.url, tt.contentType, got, tt.want)
			}
		})
	}
}
