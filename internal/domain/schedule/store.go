package schedule

// Store provides access to the per-region schedule documents maintained by
// the upstream parser.
type Store interface {
	// Load returns the region's document. A missing or unreadable resource
	// is a normal state and yields an empty document, never an error.
	Load(regionCode string) Document
	// Save persists a freshly fetched document for the region.
	Save(regionCode string, doc Document) error
	// Available lists the region codes that currently have a document.
	Available() []string
}
