package store

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ChunkSize is the size of the chunks a downloaded package is written in
const ChunkSize = 32 * 1024

var gzipMagic = []byte{0x1f, 0x8b}

// writeChunks copies src into dst in ChunkSize chunks and returns the number of bytes written
func writeChunks(dst io.Writer, src io.Reader) (written int64, err error) {
	chunk := make([]byte, ChunkSize)
	for {
		n, errRead := src.Read(chunk)
		if n > 0 {
			w, errWrite := dst.Write(chunk[:n])
			written += int64(w)
			if errWrite != nil {
				return written, errWrite
			}
		}
		if errRead == io.EOF {
			return written, nil
		}
		if errRead != nil {
			return written, errRead
		}
	}
}

// IsArchive reports whether name looks like a tarball by its extension
func IsArchive(name string) bool {
	for _, ext := range []string{".tar.gz", ".tgz", ".tar"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ExtractArchive unpacks the tarball at archivePath into dest.
// Gzip compression is detected from the content, plain tarballs are accepted too.
func ExtractArchive(archivePath, dest string) (err error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	var reader io.Reader = buffered
	if magic, errPeek := buffered.Peek(len(gzipMagic)); errPeek == nil && string(magic) == string(gzipMagic) {
		gz, errGzip := gzip.NewReader(buffered)
		if errGzip != nil {
			return errGzip
		}
		defer gz.Close()
		reader = gz
	}

	if err = os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	tr := tar.NewReader(reader)
	for {
		header, errNext := tr.Next()
		if errNext == io.EOF {
			return nil
		}
		if errNext != nil {
			return errNext
		}
		if err = extractEntry(tr, header, dest); err != nil {
			return err
		}
	}
}

func extractEntry(tr *tar.Reader, header *tar.Header, dest string) error {
	target, err := withinDir(dest, header.Name)
	if err != nil {
		return err
	}
	switch header.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, 0o755)
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, header.FileInfo().Mode().Perm())
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	case tar.TypeSymlink:
		linked := header.Linkname
		if !filepath.IsAbs(linked) {
			linked = filepath.Join(filepath.Dir(target), linked)
		}
		if _, err := withinDir(dest, mustRel(dest, linked)); err != nil {
			return fmt.Errorf("symlink '%v' points outside of the package", header.Name)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.Symlink(header.Linkname, target)
	default:
		// Devices, fifos and hard links have no place in a dbt project
		return nil
	}
}

// withinDir joins name onto dir, refusing names that escape dir
func withinDir(dir, name string) (string, error) {
	target := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry '%v' points outside of the package", name)
	}
	return target, nil
}

func mustRel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
