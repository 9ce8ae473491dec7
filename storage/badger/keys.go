package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/scout/core"
)

// Key prefixes for different data types
const (
	snapshotRecordPrefix   = "snprec"
	snapshotCapturedPrefix = "snpcap"
	cacheEntryPrefix       = "cacrec"
)

// makeSnapshotKey generates a key for a snapshot record by ID.
func makeSnapshotKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", snapshotRecordPrefix, id))
}

// makeSnapshotCapturedKey generates a composite key for the capture-time index.
// Format: prefix:capturedAt:id
func makeSnapshotCapturedKey(capturedAt time.Time, id core.ID) []byte {
	prefix := snapshotCapturedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(capturedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeCacheEntryKey generates a key for a cache entry by its key fingerprint.
func makeCacheEntryKey(fingerprint core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", cacheEntryPrefix, fingerprint))
}
