package download

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/architectury/architectury-cli/pkg/catalog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFile         = []byte("test-file")
	testFileChecksum = "3fa65313f3ee7c23d31896e7f57af67618b88dff00f6eb7c3aba2d968d6d4b32"
)

func newTestDownloader() *Downloader {
	log := logrus.New()
	log.Out = io.Discard
	return New(log, Options{UserAgent: "test-agent", GitHubToken: "gh-token", Timeout: 10 * time.Second})
}

func getTestServer(t *testing.T, failingDownloads int) *httptest.Server {
	cnt := 0
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	mux.HandleFunc("/assets/1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"id":                   1,
			"name":                 "1.20-forge.zip",
			"browser_download_url": ts.URL + "/download/1.20-forge.zip",
			"size":                 len(testFile),
		}))
	})
	mux.HandleFunc("/assets/4", func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"id":                   4,
			"name":                 "1.20-forge.zip",
			"browser_download_url": ts.URL + "/download/1.20-forge.zip",
			"size":                 len(testFile) + 1,
		}))
	})
	mux.HandleFunc("/assets/2", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"}))
	})
	mux.HandleFunc("/assets/3", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "{}")
	})
	mux.HandleFunc("/download/1.20-forge.zip", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		cnt++
		if cnt <= failingDownloads {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, err := w.Write(testFile)
		require.NoError(t, err)
	})
	return ts
}

func TestDownload(t *testing.T) {
	ts := getTestServer(t, 0)
	defer ts.Close()

	f, err := newTestDownloader().Download(context.Background(), &catalog.Asset{Name: "1.20-forge.zip", ID: 1, URL: ts.URL + "/assets/1"})
	require.NoError(t, err)
	defer f.Remove()

	require.Equal(t, int64(len(testFile)), f.Size)
	require.Equal(t, testFileChecksum, f.Checksum)
	content, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	require.Equal(t, testFile, content)

	require.NoError(t, f.Remove())
	_, err = os.Stat(f.Path)
	require.True(t, os.IsNotExist(err))
}

func TestDownloadRetry(t *testing.T) {
	ts := getTestServer(t, 1)
	defer ts.Close()

	f, err := newTestDownloader().Download(context.Background(), &catalog.Asset{Name: "1.20-forge.zip", ID: 1, URL: ts.URL + "/assets/1"})
	require.NoError(t, err)
	defer f.Remove()
	require.Equal(t, testFileChecksum, f.Checksum)
}

func TestDownloadAssetNotFound(t *testing.T) {
	ts := getTestServer(t, 0)
	defer ts.Close()

	_, err := newTestDownloader().Download(context.Background(), &catalog.Asset{Name: "gone.zip", ID: 2, URL: ts.URL + "/assets/2"})
	var errResp *ErrorResponse
	require.ErrorAs(t, err, &errResp)
	require.Equal(t, http.StatusNotFound, errResp.StatusCode)
	require.Equal(t, "Not Found", errResp.Message)
	require.ErrorContains(t, err, "failed to fetch asset data")
}

func TestDownloadMissingDownloadURL(t *testing.T) {
	ts := getTestServer(t, 0)
	defer ts.Close()

	_, err := newTestDownloader().Download(context.Background(), &catalog.Asset{Name: "broken.zip", ID: 3, URL: ts.URL + "/assets/3"})
	require.ErrorContains(t, err, "asset broken.zip has no download URL")
}

func TestDownloadSizeMismatch(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)
	ts := getTestServer(t, 0)
	defer ts.Close()

	_, err := newTestDownloader().Download(context.Background(), &catalog.Asset{Name: "1.20-forge.zip", ID: 4, URL: ts.URL + "/assets/4"})
	require.ErrorContains(t, err, "size mismatch: downloaded 9 bytes, expected 10")
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
