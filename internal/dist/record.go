package dist

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// recordEntry is one line of the wheel RECORD file.
type recordEntry struct {
	path   string
	digest string
	size   int64
}

func newRecordEntry(path string, data []byte) recordEntry {
	sum := sha256.Sum256(data)
	return recordEntry{
		path:   path,
		digest: "sha256=" + base64.RawURLEncoding.EncodeToString(sum[:]),
		size:   int64(len(data)),
	}
}

// renderRecord produces the RECORD member. The RECORD file itself is listed
// last with an empty hash and size, as installers expect.
func renderRecord(entries []recordEntry, recordPath string) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s,%s,%d\n", e.path, e.digest, e.size)
	}
	fmt.Fprintf(&b, "%s,,\n", recordPath)
	return b.String()
}
