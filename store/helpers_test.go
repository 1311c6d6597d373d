package store

import (
	"archive/tar"
	"bytes"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/iterum-provenance/dbt-runner/logging"
)

// makeTarball builds a gzipped tarball holding files (name -> content), with their parent directories
func makeTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	dirs := map[string]bool{}
	for _, name := range names {
		dir := filepath.Dir(name)
		if dir != "." && !dirs[dir] {
			dirs[dir] = true
			require.NoError(t, tw.WriteHeader(&tar.Header{Name: dir + "/", Typeflag: tar.TypeDir, Mode: 0o755}))
		}
		content := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func newTestFetcher(t *testing.T) (*Fetcher, *logging.Recorder) {
	t.Helper()
	rec := logging.NewRecorder()
	return &Fetcher{
		DownloadDir: filepath.Join(t.TempDir(), DownloadDir),
		HTTP:        NewHTTPClient(),
		NewObjects:  NewObjectDownloader,
		Clone:       PlainClone,
		log:         rec,
	}, rec
}
