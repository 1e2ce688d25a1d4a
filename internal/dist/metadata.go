package dist

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"numbatbuild/internal/config"
)

// metadataVersion is the core-metadata format version written into
// METADATA and PKG-INFO.
const metadataVersion = "2.1"

// RenderMetadata produces the core metadata block shared by the wheel's
// METADATA file and the sdist's PKG-INFO. Author fields are NFC-normalized
// so byte-identical output does not depend on the manifest's Unicode form.
func RenderMetadata(m *config.Manifest) string {
	var b strings.Builder

	writeField(&b, "Metadata-Version", metadataVersion)
	writeField(&b, "Name", m.Project.Name)
	writeField(&b, "Version", m.Project.Version)
	writeField(&b, "Summary", m.Project.Description)
	writeField(&b, "License", m.Project.License)

	if names := authorNames(m.Project.Authors); names != "" {
		writeField(&b, "Author", names)
	}
	if emails := authorEmails(m.Project.Authors); emails != "" {
		writeField(&b, "Author-email", emails)
	}
	writeField(&b, "Requires-Python", m.Project.RequiresPython)

	for _, label := range sortedKeys(m.Project.URLs) {
		writeField(&b, "Project-URL", fmt.Sprintf("%s, %s", label, m.Project.URLs[label]))
	}

	for _, dep := range m.Project.Dependencies {
		writeField(&b, "Requires-Dist", dep)
	}
	for _, extra := range sortedKeys(m.Project.OptionalDependencies) {
		writeField(&b, "Provides-Extra", extra)
		for _, dep := range m.Project.OptionalDependencies[extra] {
			writeField(&b, "Requires-Dist", fmt.Sprintf("%s ; extra == %q", dep, extra))
		}
	}

	return b.String()
}

// RenderWheelFile produces the WHEEL archive member.
func RenderWheelFile(generator, tag string) string {
	var b strings.Builder
	writeField(&b, "Wheel-Version", "1.0")
	writeField(&b, "Generator", generator)
	writeField(&b, "Root-Is-Purelib", "true")
	writeField(&b, "Tag", tag)
	return b.String()
}

// RenderEntryPoints produces the entry_points.txt member declaring console
// scripts. Returns the empty string when no scripts are declared.
func RenderEntryPoints(scripts map[string]string) string {
	if len(scripts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("[console_scripts]\n")
	for _, name := range sortedKeys(scripts) {
		fmt.Fprintf(&b, "%s = %s\n", name, scripts[name])
	}
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", key, value)
}

func authorNames(authors []config.Author) string {
	var names []string
	for _, a := range authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, norm.NFC.String(name))
		}
	}
	return strings.Join(names, ", ")
}

func authorEmails(authors []config.Author) string {
	var entries []string
	for _, a := range authors {
		name := norm.NFC.String(strings.TrimSpace(a.Name))
		email := strings.TrimSpace(a.Email)
		switch {
		case email == "":
			continue
		case name == "":
			entries = append(entries, email)
		default:
			entries = append(entries, fmt.Sprintf("%s <%s>", name, email))
		}
	}
	return strings.Join(entries, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
