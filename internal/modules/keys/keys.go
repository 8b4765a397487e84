// Package keys builds and parses the composite keys of the single metadata
// table. Every record is grouped by owner via the partition key and
// disambiguated within the owner by a kind-prefixed sort key.
package keys

import (
	"fmt"
	"strings"
)

const (
	ownerPrefix   = "USER#"
	projectPrefix = "PROJECT#"
	filePrefix    = "FILE#"
)

// OwnerPK returns the partition key shared by all of an owner's records.
func OwnerPK(ownerID string) string {
	return ownerPrefix + ownerID
}

// ProjectSK returns the sort key of a project record. The creation timestamp
// comes first so a reverse scan of the PROJECT# prefix yields newest-first.
func ProjectSK(createdAt, projectID string) string {
	return fmt.Sprintf("%s%s#%s", projectPrefix, createdAt, projectID)
}

// ProjectSKPrefix is the sort-key prefix covering all project records.
func ProjectSKPrefix() string {
	return projectPrefix
}

// FileSK returns the deterministic sort key of a file record. It contains no
// timestamp so the same (projectId, fileId) pair always maps to the same key,
// which makes point deletes and duplicate-confirm detection possible without
// a scan.
func FileSK(projectID, fileID string) string {
	return fmt.Sprintf("%s%s#%s", filePrefix, projectID, fileID)
}

// FileSKPrefix returns the sort-key prefix covering one project's files.
func FileSKPrefix(projectID string) string {
	return filePrefix + projectID + "#"
}

// AllFilesSKPrefix is the sort-key prefix covering all of an owner's files,
// regardless of project. Needed for legacy scans and account-wide stats.
func AllFilesSKPrefix() string {
	return filePrefix
}

// ParseFileSK splits a deterministic file sort key back into its parts.
// Returns ok=false for anything that is not a well-formed two-segment file
// sort key.
func ParseFileSK(sk string) (projectID, fileID string, ok bool) {
	rest, found := strings.CutPrefix(sk, filePrefix)
	if !found {
		return "", "", false
	}
	projectID, fileID, found = strings.Cut(rest, "#")
	if !found || projectID == "" || fileID == "" {
		return "", "", false
	}
	if strings.Contains(fileID, "#") {
		return "", "", false
	}
	return projectID, fileID, true
}
