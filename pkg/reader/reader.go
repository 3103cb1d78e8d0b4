package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stork-search/stork/pkg/core"
)

const defaultFetchTimeout = 15 * time.Second

// Reader resolves document descriptors to raw bytes. Path-based descriptors
// are resolved relative to BaseDirectory and are not permitted to escape it;
// URL-based descriptors require WebScrapingEnabled.
type Reader struct {
	HTTPClient         *http.Client
	BaseDirectory      string
	DefaultFrontmatter FrontmatterHandling
	WebScrapingEnabled bool
}

// New creates a Reader rooted at baseDir with a default HTTP client.
func New(baseDir string, webScrapingEnabled bool, defaultFrontmatter FrontmatterHandling) *Reader {
	return &Reader{
		BaseDirectory:      baseDir,
		WebScrapingEnabled: webScrapingEnabled,
		DefaultFrontmatter: defaultFrontmatter,
		HTTPClient:         &http.Client{Timeout: defaultFetchTimeout},
	}
}

// Read resolves one descriptor to its raw contents, detected file type, and
// any frontmatter fields. handling overrides the Reader's default for this
// document only; pass -1 to use the default.
func (r *Reader) Read(ctx context.Context, d Descriptor, handling FrontmatterHandling) (Result, error) {
	raw, filetype, err := r.fetch(ctx, d)
	if err != nil {
		return Result{}, err
	}

	if d.Filetype != "" {
		filetype = d.Filetype
	}

	if filetype == "" {
		return Result{}, fmt.Errorf("%w: %s", core.ErrCannotDetermineFiletype, d.Title)
	}

	if handling < FrontmatterIgnore || handling > FrontmatterParse {
		handling = r.DefaultFrontmatter
	}

	body, fields := applyFrontmatter(raw, handling)

	return Result{Contents: body, Filetype: filetype, Fields: fields}, nil
}

// fetch dispatches on the descriptor variant and returns the raw text plus
// a best-effort file type guess. Contents takes priority over SrcPath, which
// takes priority over SrcURL, mirroring the order they are declared in
// Descriptor.
func (r *Reader) fetch(ctx context.Context, d Descriptor) (string, core.ContentType, error) {
	switch {
	case d.Contents != nil:
		return *d.Contents, "", nil
	case d.SrcPath != nil:
		return r.readPath(*d.SrcPath)
	case d.SrcURL != nil:
		return r.readURL(ctx, *d.SrcURL)
	default:
		return "", "", fmt.Errorf("%w: %s", core.ErrFileNotFound, d.Title)
	}
}

// readPath resolves path relative to BaseDirectory, refusing to read outside
// of it, and detects file type from the extension.
func (r *Reader) readPath(path string) (string, core.ContentType, error) {
	full, err := r.resolvePath(path)
	if err != nil {
		return "", "", err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w: %s", core.ErrFileNotFound, path)
		}

		return "", "", fmt.Errorf("%w: %s: %w", core.ErrFileNotFound, path, err)
	}

	return string(data), filetypeFromExtension(path), nil
}

// resolvePath joins path onto BaseDirectory and rejects any result that
// escapes it via ".." traversal.
func (r *Reader) resolvePath(path string) (string, error) {
	base, err := filepath.Abs(r.BaseDirectory)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	joined := filepath.Join(base, path)

	resolved, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	if resolved != base && !strings.HasPrefix(resolved, base+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s escapes base directory", core.ErrFileNotFound, path)
	}

	return resolved, nil
}

// readURL performs an HTTP GET and classifies the response by its
// Content-Type header.
func (r *Reader) readURL(ctx context.Context, url string) (string, core.ContentType, error) {
	if !r.WebScrapingEnabled {
		return "", "", fmt.Errorf("%w: %s", core.ErrWebScrapingNotEnabled, url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", core.ErrWebPageNotFetched, url, err)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", core.ErrWebPageNotFetched, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", "", fmt.Errorf("%w: %s returned %d", core.ErrWebPageErrorfulStatusCode, url, resp.StatusCode)
	}

	filetype, ok := filetypeFromContentType(resp.Header.Get("Content-Type"))
	if !ok {
		return "", "", fmt.Errorf("%w: %s", core.ErrUnknownContentType, resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", core.ErrWebPageNotFetched, url, err)
	}

	return string(body), filetype, nil
}

// filetypeFromExtension maps a file extension to a ContentType. An empty
// return means the caller must supply an explicit override.
func filetypeFromExtension(path string) core.ContentType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return core.ContentTypeHTML
	case ".md", ".markdown", ".mdown":
		return core.ContentTypeMarkdown
	case ".srt":
		return core.ContentTypeSRT
	case ".txt":
		return core.ContentTypePlainText
	default:
		return ""
	}
}

// filetypeFromContentType maps an HTTP Content-Type header value to a
// ContentType. The second return is false for any type besides the two
// recognized for URL-sourced documents.
func filetypeFromContentType(header string) (core.ContentType, bool) {
	mediaType := header
	if idx := strings.IndexByte(header, ';'); idx >= 0 {
		mediaType = header[:idx]
	}

	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "text/plain":
		return core.ContentTypePlainText, true
	case "text/html":
		return core.ContentTypeHTML, true
	default:
		return "", false
	}
}
