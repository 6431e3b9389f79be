package schedule

import (
	"crypto/sha256"
	"encoding/json"
)

// Fingerprint is a content digest of a Document, used only for equality
// comparison across polling ticks.
type Fingerprint [sha256.Size]byte

// ComputeFingerprint digests the document's canonical serialization.
// encoding/json marshals map keys in sorted order, so two documents with the
// same dates, queues and interval lists hash identically regardless of key
// order. Interval lists keep their document order; reordering them is a real
// change.
func ComputeFingerprint(doc Document) Fingerprint {
	canonical, err := json.Marshal(doc)
	if err != nil {
		// A Document of plain strings cannot fail to marshal.
		return Fingerprint{}
	}
	return sha256.Sum256(canonical)
}
