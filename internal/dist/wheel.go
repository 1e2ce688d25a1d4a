package dist

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"numbatbuild/internal/collect"
	"numbatbuild/internal/config"
)

// Tag is the compatibility tag for the wheels this builder produces. The
// project is pure Python, so the wheel works for any interpreter and
// platform.
const Tag = "py3-none-any"

// generator identifies this tool in the WHEEL member.
const generator = "numbat-build"

// archiveEpoch is the fixed timestamp stamped on every archive member so
// repeated builds of an unchanged tree are byte-identical.
var archiveEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// WheelFileName returns the wheel name for the manifest, e.g.
// numbat-0.0.1-py3-none-any.whl.
func WheelFileName(m *config.Manifest) string {
	return fmt.Sprintf("%s-%s-%s.whl", m.DistName(), m.Project.Version, Tag)
}

// BuildWheel assembles the wheel from the collected file set plus metadata
// and writes it into outDir. The member order is fixed (sorted sources, then
// dist-info) and timestamps are pinned, so identical inputs produce an
// identical archive.
func BuildWheel(m *config.Manifest, set *collect.Set, outDir string) (string, error) {
	wheelPath := filepath.Join(outDir, WheelFileName(m))

	out, err := os.Create(wheelPath)
	if err != nil {
		return "", fmt.Errorf("create wheel: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	var entries []recordEntry

	addMember := func(name string, data []byte) error {
		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		}
		header.SetMode(0o644)
		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		entries = append(entries, newRecordEntry(name, data))
		return nil
	}

	for _, f := range set.Files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Rel, err)
		}
		if err := addMember(f.Rel, data); err != nil {
			return "", err
		}
	}

	distInfo := fmt.Sprintf("%s-%s.dist-info", m.DistName(), m.Project.Version)
	if err := addMember(distInfo+"/METADATA", []byte(RenderMetadata(m))); err != nil {
		return "", err
	}
	if err := addMember(distInfo+"/WHEEL", []byte(RenderWheelFile(generator, Tag))); err != nil {
		return "", err
	}
	if eps := RenderEntryPoints(m.Project.Scripts); eps != "" {
		if err := addMember(distInfo+"/entry_points.txt", []byte(eps)); err != nil {
			return "", err
		}
	}

	recordPath := distInfo + "/RECORD"
	record := renderRecord(entries, recordPath)
	header := &zip.FileHeader{
		Name:     recordPath,
		Method:   zip.Deflate,
		Modified: archiveEpoch,
	}
	header.SetMode(0o644)
	w, err := zw.CreateHeader(header)
	if err != nil {
		return "", fmt.Errorf("add RECORD: %w", err)
	}
	if _, err := w.Write([]byte(record)); err != nil {
		return "", fmt.Errorf("write RECORD: %w", err)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize wheel: %w", err)
	}
	return wheelPath, out.Close()
}
