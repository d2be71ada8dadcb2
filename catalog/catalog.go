// Package catalog tracks the latest feature table written per dataset.
//
// A catalog entry records which table object holds the current features of
// a dataset, its shape, and a monotonically increasing version. Two
// backends are provided: Blob keeps JSON entries plus a CURRENT pointer in
// any blobstore.BlobStore, DDB uses DynamoDB conditional writes so
// concurrent writers can coordinate safely.
package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrDatasetNotFound indicates a dataset with no committed entry.
var ErrDatasetNotFound = errors.New("dataset not found in catalog")

// ErrConcurrentCommit indicates another writer committed the same version
// first.
var ErrConcurrentCommit = errors.New("concurrent catalog commit detected")

// Entry describes the latest feature table of a dataset.
type Entry struct {
	// Dataset is the logical dataset name, e.g. "qm9".
	Dataset string `json:"dataset"`

	// Object is the blob name of the table, e.g. "qm9/bob.csv.zst".
	Object string `json:"object"`

	// Variant names the representation stored in the table, e.g. "E" or
	// "bob".
	Variant string `json:"variant"`

	// Rows and Columns give the table shape.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Version increases by one per commit. Zero means never committed.
	Version uint64 `json:"version"`

	// UpdatedAt is the commit time in UTC.
	UpdatedAt time.Time `json:"updated_at"`
}

// Catalog maps dataset names to their latest entry.
type Catalog interface {
	// Latest returns the most recently committed entry for dataset.
	// It fails with ErrDatasetNotFound if nothing was committed.
	Latest(ctx context.Context, dataset string) (*Entry, error)

	// Commit records entry as the next version of its dataset. The
	// entry's Version and UpdatedAt are assigned by the catalog. It
	// fails with ErrConcurrentCommit when another writer won the
	// version race.
	Commit(ctx context.Context, entry *Entry) error
}
