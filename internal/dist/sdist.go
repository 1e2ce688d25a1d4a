package dist

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"numbatbuild/internal/collect"
	"numbatbuild/internal/config"
)

// SdistFileName returns the source distribution name for the manifest, e.g.
// numbat-0.0.1.tar.gz.
func SdistFileName(m *config.Manifest) string {
	return fmt.Sprintf("%s-%s.tar.gz", m.DistName(), m.Project.Version)
}

// BuildSdist assembles the source distribution: PKG-INFO, the manifest, and
// every collected source file under a {name}-{version}/ prefix. Member order
// and timestamps are fixed for idempotent output. The resulting archive is a
// published artifact and must never be deleted by clean operations.
func BuildSdist(m *config.Manifest, set *collect.Set, manifestPath, outDir string) (string, error) {
	sdistPath := filepath.Join(outDir, SdistFileName(m))

	out, err := os.Create(sdistPath)
	if err != nil {
		return "", fmt.Errorf("create sdist: %w", err)
	}
	defer out.Close()

	gz, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		return "", fmt.Errorf("gzip writer: %w", err)
	}
	tw := tar.NewWriter(gz)

	prefix := fmt.Sprintf("%s-%s", m.DistName(), m.Project.Version)

	addMember := func(name string, data []byte) error {
		header := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: archiveEpoch,
			Format:  tar.FormatUSTAR,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		return nil
	}

	if err := addMember(path.Join(prefix, "PKG-INFO"), []byte(RenderMetadata(m))); err != nil {
		return "", err
	}

	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	if err := addMember(path.Join(prefix, filepath.Base(manifestPath)), manifestData); err != nil {
		return "", err
	}

	srcDir := filepath.ToSlash(m.Build.SrcDir)
	for _, f := range set.Files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Rel, err)
		}
		if err := addMember(path.Join(prefix, srcDir, f.Rel), data); err != nil {
			return "", err
		}
	}

	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("finalize tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("finalize gzip: %w", err)
	}
	return sdistPath, out.Close()
}
