// Package packfetch downloads community certification packs into a local
// content root. Packs are published as zip archives listed in a YAML
// index alongside their sha256 checksums.
package packfetch

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultIndexURL is the published index of community packs.
const DefaultIndexURL = "https://raw.githubusercontent.com/abhisek/certquest-packs/main/index.yaml"

var (
	ErrChecksum = errors.New("checksum verification failed")
	ErrExists   = errors.New("pack already exists")
)

// Entry describes one downloadable pack in the community index.
type Entry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ArchiveURL  string `yaml:"archive_url"`
	SHA256      string `yaml:"sha256"`
}

// Fetcher retrieves the community index and installs pack archives.
type Fetcher struct {
	indexURL string
	client   *http.Client
}

// New creates a Fetcher for the given index URL; empty means the default.
func New(indexURL string) *Fetcher {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return &Fetcher{
		indexURL: indexURL,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Index fetches and parses the community pack index.
func (f *Fetcher) Index(ctx context.Context) ([]Entry, error) {
	data, err := f.download(ctx, f.indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	var idx struct {
		Packs []Entry `yaml:"packs"`
	}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return idx.Packs, nil
}

// Fetch downloads one pack archive, verifies its checksum, and extracts
// it under destRoot/<id>/. An already-installed pack is never overwritten.
func (f *Fetcher) Fetch(ctx context.Context, entry Entry, destRoot string) error {
	if entry.ID == "" || entry.ArchiveURL == "" {
		return fmt.Errorf("index entry for %q is incomplete", entry.Name)
	}

	dest := filepath.Join(destRoot, entry.ID)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%q at %s: %w", entry.ID, dest, ErrExists)
	}

	data, err := f.download(ctx, entry.ArchiveURL)
	if err != nil {
		return fmt.Errorf("download %s: %w", entry.ID, err)
	}
	if err := verifyChecksum(data, entry.SHA256); err != nil {
		return fmt.Errorf("%s: %w", entry.ID, err)
	}
	if err := extractArchive(data, dest); err != nil {
		_ = os.RemoveAll(dest)
		return fmt.Errorf("extract %s: %w", entry.ID, err)
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

func verifyChecksum(data []byte, expectedHex string) error {
	if expectedHex == "" {
		return fmt.Errorf("%w: no checksum in index", ErrChecksum)
	}
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if actual != strings.ToLower(expectedHex) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

// extractArchive unpacks a zip archive under dest, stripping a single
// leading directory if the archive wraps its content in one. Entries
// escaping dest are rejected.
func extractArchive(data []byte, dest string) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}

	prefix := commonPrefix(r.File)

	for _, zf := range r.File {
		name := strings.TrimPrefix(zf.Name, prefix)
		if name == "" || strings.HasSuffix(zf.Name, "/") {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(name))
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", zf.Name)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", name, err)
		}

		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("read entry %s: %w", name, err)
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	return nil
}

// commonPrefix returns the single top-level directory shared by every
// entry, or "" when the archive has none.
func commonPrefix(files []*zip.File) string {
	var prefix string
	for _, zf := range files {
		i := strings.IndexByte(zf.Name, '/')
		if i < 0 {
			return ""
		}
		top := zf.Name[:i+1]
		if prefix == "" {
			prefix = top
		} else if prefix != top {
			return ""
		}
	}
	return prefix
}
