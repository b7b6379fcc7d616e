package updater

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChecker(endpoint, goos string) *Checker {
	return &Checker{
		endpoint: endpoint,
		client:   http.DefaultClient,
		goos:     goos,
		goarch:   "amd64",
	}
}

func tarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o755, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func zipArchive(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// releaseServer serves a release feed whose single asset is archive.
func releaseServer(t *testing.T, tag, assetName string, archive []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/latest", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(ReleaseInfo{
			TagName: tag,
			HTMLURL: "https://example.com/release",
			Assets:  []Asset{{Name: assetName, BrowserDownloadURL: srv.URL + "/asset"}},
		})
	})
	mux.HandleFunc("/asset", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "0.2.0", "0.2.1", true},
		{"newer minor", "0.2.0", "0.3.0", true},
		{"newer major", "0.2.0", "1.0.0", true},
		{"same version", "0.2.0", "0.2.0", false},
		{"older version", "0.3.0", "0.2.0", false},
		{"empty current", "", "0.2.0", false},
		{"empty latest", "0.2.0", "", false},
		{"dev current", "dev", "0.2.0", false},
		{"two part version", "0.2", "0.3.0", true},
		{"minor jump", "0.9.0", "0.10.0", true},
		{"prerelease is older", "1.0.0", "1.0.0-rc.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNewer(tt.current, tt.latest))
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", normalizeVersion("v1.2.3"))
	assert.Equal(t, "1.2.3", normalizeVersion("1.2.3"))
	assert.Equal(t, "v1.0.0", normalizeVersion("vv1.0.0"))
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, "roadmap-skill_1.2.0_linux_amd64.tar.gz", testChecker("", "linux").assetName("1.2.0"))
	assert.Equal(t, "roadmap-skill_1.2.0_windows_amd64.zip", testChecker("", "windows").assetName("1.2.0"))
}

func TestCheck(t *testing.T) {
	srv := releaseServer(t, "v0.3.0", "unused", nil)
	c := testChecker(srv.URL+"/latest", "linux")

	result := c.Check(context.Background(), "v0.2.0")
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "0.2.0", result.CurrentVersion)
	assert.Equal(t, "0.3.0", result.LatestVersion)
	assert.Equal(t, "https://example.com/release", result.ReleaseURL)

	assert.False(t, c.Check(context.Background(), "0.3.0").UpdateAvailable)
	assert.False(t, c.Check(context.Background(), "dev").UpdateAvailable)
}

func TestCheck_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	result := testChecker(srv.URL, "linux").Check(context.Background(), "0.1.0")
	assert.False(t, result.UpdateAvailable)
	assert.Empty(t, result.LatestVersion)
}

func TestUpdate_ReplacesBinary(t *testing.T) {
	asset := "roadmap-skill_0.3.0_linux_amd64.tar.gz"
	srv := releaseServer(t, "v0.3.0", asset, tarGz(t, "roadmap-skill", []byte("new binary")))

	execPath := filepath.Join(t.TempDir(), "roadmap-skill")
	require.NoError(t, os.WriteFile(execPath, []byte("old binary"), 0o755))

	version, err := testChecker(srv.URL+"/latest", "linux").Update(context.Background(), "0.2.0", execPath)
	require.NoError(t, err)
	assert.Equal(t, "0.3.0", version)

	data, err := os.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(data))
}

func TestUpdate_Errors(t *testing.T) {
	srv := releaseServer(t, "v0.3.0", "something_else.tar.gz", nil)
	c := testChecker(srv.URL+"/latest", "linux")

	_, err := c.Update(context.Background(), "0.3.0", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already at latest")

	_, err = c.Update(context.Background(), "0.2.0", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no release asset")
}

func TestExtractBinary(t *testing.T) {
	data, err := extractBinary(tarGz(t, "dist/roadmap-skill", []byte("tar")), "x.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "tar", string(data))

	data, err = extractBinary(zipArchive(t, "roadmap-skill.exe", []byte("zip")), "x.zip")
	require.NoError(t, err)
	assert.Equal(t, "zip", string(data))

	_, err = extractBinary(tarGz(t, "README.md", []byte("docs")), "x.tar.gz")
	assert.ErrorContains(t, err, "not found in archive")

	_, err = extractBinary([]byte("not gzip"), "x.tar.gz")
	assert.Error(t, err)
}
