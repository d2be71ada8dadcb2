package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/molfeat/blobstore"
)

const (
	entryFilePrefix = "ENTRY"
	currentFileName = "CURRENT"
)

// Blob is a Catalog stored as JSON blobs. Each commit writes an immutable
// ENTRY-<version>.json and then repoints CURRENT at it, so readers never
// observe a partially written entry. Writer coordination is process-local;
// use DDB when multiple processes commit to the same prefix.
type Blob struct {
	store  blobstore.BlobStore
	prefix string
	mu     sync.Mutex
}

// NewBlob creates a blob-backed catalog rooted at prefix.
func NewBlob(store blobstore.BlobStore, prefix string) *Blob {
	return &Blob{
		store:  store,
		prefix: prefix,
	}
}

func (c *Blob) currentName(dataset string) string {
	return path.Join(c.prefix, dataset, currentFileName)
}

func (c *Blob) entryName(dataset string, version uint64) string {
	return path.Join(c.prefix, dataset, fmt.Sprintf("%s-%06d.json", entryFilePrefix, version))
}

// Latest implements Catalog.
func (c *Blob) Latest(ctx context.Context, dataset string) (*Entry, error) {
	current, err := blobstore.ReadAll(ctx, c.store, c.currentName(dataset))
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, ErrDatasetNotFound
	}
	if err != nil {
		return nil, err
	}

	name := path.Join(c.prefix, dataset, strings.TrimSpace(string(current)))
	data, err := blobstore.ReadAll(ctx, c.store, name)
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// Commit implements Catalog.
func (c *Blob) Commit(ctx context.Context, entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var version uint64
	prev, err := c.Latest(ctx, entry.Dataset)
	switch {
	case err == nil:
		version = prev.Version + 1
	case errors.Is(err, ErrDatasetNotFound):
		version = 1
	default:
		return err
	}

	entry.Version = version
	entry.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	entryName := c.entryName(entry.Dataset, version)
	if err := c.store.Put(ctx, entryName, data); err != nil {
		return err
	}

	return c.store.Put(ctx, c.currentName(entry.Dataset), []byte(path.Base(entryName)))
}
