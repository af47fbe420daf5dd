package mdpdf

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
)

// maxRemoteImageSize bounds a single downloaded asset (32MB).
const maxRemoteImageSize = 32 << 20

// trailingExtensionPattern recognizes a usable file extension at the end
// of a URL path.
var trailingExtensionPattern = regexp.MustCompile(`(\.[A-Za-z0-9]{1,5})$`)

// RemoteImageDownloader fetches http(s) image references to local
// assets. It implements RemoteDownloader.
type RemoteImageDownloader struct {
	config RemoteImageConfig
	client *http.Client
}

// NewRemoteImageDownloader creates a downloader with its own HTTP client
// honoring the configured timeout.
func NewRemoteImageDownloader(config RemoteImageConfig) *RemoteImageDownloader {
	return &RemoteImageDownloader{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Enabled reports whether remote image capture is active.
func (d *RemoteImageDownloader) Enabled() bool {
	return d.config.Enabled
}

// Download fetches rawURL into outDir under assetStem, deriving the file
// extension from the Content-Type header, then the URL path, with .png
// as the fallback. All failures wrap ErrRemoteFetch; the substitution
// pass degrades them inline and never aborts.
func (d *RemoteImageDownloader) Download(rawURL, outDir, assetStem string) (string, error) {
	if !d.config.Enabled {
		return "", ErrRemoteFetch
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	req.Header.Set("User-Agent", d.config.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrRemoteFetch, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}

	extension := resolveExtension(rawURL, resp.Header.Get("Content-Type"))
	target := filepath.Join(outDir, assetStem+extension)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	return target, nil
}

// resolveExtension picks an asset extension from the response content
// type, falling back to the URL path, then to .png.
func resolveExtension(rawURL, contentType string) string {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
				return exts[0]
			}
		}
	}

	if parsed, err := url.Parse(rawURL); err == nil {
		if m := trailingExtensionPattern.FindStringSubmatch(path.Base(parsed.Path)); m != nil {
			return m[1]
		}
	}

	return ".png"
}
