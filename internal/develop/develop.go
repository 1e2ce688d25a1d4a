package develop

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"numbatbuild/internal/collect"
	"numbatbuild/internal/config"
	"numbatbuild/internal/dist"
)

// Result describes what an editable install wrote.
type Result struct {
	PthPath     string
	DistInfoDir string
}

// Install registers the package for editable use: the interpreter imports
// modules straight from the source tree, no archive is produced. It writes a
// .pth file pointing at the source root plus a dist-info directory into
// siteDir so installers can see the package and uninstall it later.
func Install(m *config.Manifest, set *collect.Set, siteDir string) (*Result, error) {
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		return nil, fmt.Errorf("create site directory: %w", err)
	}

	srcRoot, err := filepath.Abs(set.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve source root: %w", err)
	}

	pthPath := filepath.Join(siteDir, m.DistName()+".pth")
	if err := os.WriteFile(pthPath, []byte(srcRoot+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write pth file: %w", err)
	}

	distInfoDir := filepath.Join(siteDir, fmt.Sprintf("%s-%s.dist-info", m.DistName(), m.Project.Version))
	if err := os.MkdirAll(distInfoDir, 0o755); err != nil {
		return nil, fmt.Errorf("create dist-info: %w", err)
	}

	members := map[string]string{
		"METADATA":  dist.RenderMetadata(m),
		"INSTALLER": "numbat-build\n",
	}
	if eps := dist.RenderEntryPoints(m.Project.Scripts); eps != "" {
		members["entry_points.txt"] = eps
	}
	directURL, err := renderDirectURL(srcRoot)
	if err != nil {
		return nil, err
	}
	members["direct_url.json"] = directURL

	for name, content := range members {
		if err := os.WriteFile(filepath.Join(distInfoDir, name), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	record := renderEditableRecord(pthPath, distInfoDir, members)
	if err := os.WriteFile(filepath.Join(distInfoDir, "RECORD"), []byte(record), 0o644); err != nil {
		return nil, fmt.Errorf("write RECORD: %w", err)
	}

	return &Result{PthPath: pthPath, DistInfoDir: distInfoDir}, nil
}

func renderDirectURL(srcRoot string) (string, error) {
	payload := struct {
		URL     string `json:"url"`
		DirInfo struct {
			Editable bool `json:"editable"`
		} `json:"dir_info"`
	}{URL: "file://" + filepath.ToSlash(srcRoot)}
	payload.DirInfo.Editable = true

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal direct_url: %w", err)
	}
	return string(data) + "\n", nil
}

func renderEditableRecord(pthPath, distInfoDir string, members map[string]string) string {
	base := filepath.Base(distInfoDir)
	record := fmt.Sprintf("%s,,\n", filepath.Base(pthPath))
	for _, name := range []string{"METADATA", "INSTALLER", "entry_points.txt", "direct_url.json"} {
		if _, ok := members[name]; ok {
			record += fmt.Sprintf("%s/%s,,\n", base, name)
		}
	}
	record += fmt.Sprintf("%s/RECORD,,\n", base)
	return record
}
