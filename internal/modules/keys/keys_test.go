package keys

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnerPK(t *testing.T) {
	assert.Equal(t, "USER#abc-123", OwnerPK("abc-123"))
}

func TestProjectSK_SortsNewestLastLexically(t *testing.T) {
	older := ProjectSK("2025-01-01T00:00:00.000Z", "p1")
	newer := ProjectSK("2025-06-01T00:00:00.000Z", "p2")
	assert.Less(t, older, newer, "reverse scan must return newest first")
	assert.Equal(t, "PROJECT#2025-01-01T00:00:00.000Z#p1", older)
}

func TestFileSK_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		fileID    string
	}{
		{"uuids", uuid.NewString(), uuid.NewString()},
		{"short ids", "p", "f"},
		{"dashes", "proj-1", "file-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sk := FileSK(tt.projectID, tt.fileID)
			gotProject, gotFile, ok := ParseFileSK(sk)
			assert.True(t, ok)
			assert.Equal(t, tt.projectID, gotProject)
			assert.Equal(t, tt.fileID, gotFile)
		})
	}
}

func TestFileSKPrefix_CoversFileSK(t *testing.T) {
	sk := FileSK("proj", "file")
	assert.Equal(t, "FILE#proj#", FileSKPrefix("proj"))
	assert.Contains(t, sk, FileSKPrefix("proj"))
}

func TestParseFileSK_Malformed(t *testing.T) {
	tests := []struct {
		name string
		sk   string
	}{
		{"empty", ""},
		{"wrong prefix", "PROJECT#2025-01-01#p1"},
		{"no separator", "FILE#only-one-part"},
		{"empty project", "FILE##f1"},
		{"empty file", "FILE#p1#"},
		{"extra segment", "FILE#p1#f1#extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ParseFileSK(tt.sk)
			assert.False(t, ok)
		})
	}
}
