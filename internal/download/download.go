package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/architectury/architectury-cli/pkg/catalog"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("unexpected status code: %d, error: %s", e.StatusCode, e.Message)
}

type assetMetadata struct {
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// File is a downloaded asset stored in a temporary file.
type File struct {
	Path     string
	Size     int64
	Checksum string
}

func (f *File) Remove() error {
	return os.Remove(f.Path)
}

type Options struct {
	UserAgent   string
	GitHubToken string
	Timeout     time.Duration
}

type Downloader struct {
	log     *logrus.Logger
	client  *retryablehttp.Client
	options Options
}

func New(log *logrus.Logger, options Options) *Downloader {
	client := retryablehttp.NewClient()
	client.Logger = nil
	if options.Timeout > 0 {
		client.HTTPClient.Timeout = options.Timeout
	}
	return &Downloader{
		log:     log,
		client:  client,
		options: options,
	}
}

func (d *Downloader) newRequest(ctx context.Context, url, accept string) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if d.options.UserAgent != "" {
		req.Header.Set("User-Agent", d.options.UserAgent)
	}
	return req, nil
}

func decodeError(resp *http.Response) error {
	errResp := &ErrorResponse{StatusCode: resp.StatusCode}
	// the body is not always JSON, the status code is enough in that case
	_ = json.NewDecoder(resp.Body).Decode(errResp)
	return errResp
}

func (d *Downloader) fetchMetadata(ctx context.Context, asset *catalog.Asset) (*assetMetadata, error) {
	req, err := d.newRequest(ctx, asset.URL, "application/json")
	if err != nil {
		return nil, err
	}
	if d.options.GitHubToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.options.GitHubToken)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	metadata := &assetMetadata{}
	if err := json.NewDecoder(resp.Body).Decode(metadata); err != nil {
		return nil, fmt.Errorf("failed to decode asset metadata: %w", err)
	}
	if metadata.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("asset %s has no download URL", asset.Name)
	}
	return metadata, nil
}

func (d *Downloader) downloadToFile(ctx context.Context, url string, dst io.Writer) (int64, string, error) {
	req, err := d.newRequest(ctx, url, "application/octet-stream")
	if err != nil {
		return 0, "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	checksumHash := sha256.New()
	n, err := io.Copy(io.MultiWriter(dst, checksumHash), resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to write file: %w", err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return 0, "", fmt.Errorf("unexpected content length: %d (should be %d)", n, resp.ContentLength)
	}
	return n, hex.EncodeToString(checksumHash.Sum(nil)), nil
}

// Download resolves the download location of the asset and stores its content
// in a temporary file. The caller is responsible for removing the file.
func (d *Downloader) Download(ctx context.Context, asset *catalog.Asset) (*File, error) {
	d.log.Debugf("fetching metadata of asset %s (id=%d)", asset.Name, asset.ID)
	metadata, err := d.fetchMetadata(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset data: %w", err)
	}
	downloadURL := metadata.BrowserDownloadURL

	tmpFile, err := os.CreateTemp("", "architectury-template-*.zip")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	d.log.Debugf("downloading %s to %s", downloadURL, tmpFile.Name())
	size, checksum, err := d.downloadToFile(ctx, downloadURL, tmpFile)
	if closeErr := tmpFile.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close temp file: %w", closeErr)
	}
	// size is 0 when the metadata does not report it
	if err == nil && metadata.Size > 0 && size != metadata.Size {
		err = fmt.Errorf("size mismatch: downloaded %d bytes, expected %d", size, metadata.Size)
	}
	if err != nil {
		if rmErr := os.Remove(tmpFile.Name()); rmErr != nil {
			d.log.Errorf("could not remove temp file: %v", rmErr)
		}
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	d.log.Debugf("downloaded %s (%d bytes, sha256=%s)", asset.Name, size, checksum)
	return &File{
		Path:     tmpFile.Name(),
		Size:     size,
		Checksum: checksum,
	}, nil
}
