package molfeat

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/hupe1980/molfeat/blobstore"
	"github.com/hupe1980/molfeat/catalog"
	"github.com/hupe1980/molfeat/geometry"
	"github.com/hupe1980/molfeat/table"
	"github.com/hupe1980/molfeat/xyz"
)

type pipelineOptions struct {
	catalog     catalog.Catalog
	compression table.Compression
}

// PipelineOption configures Pipeline behavior.
type PipelineOption func(*pipelineOptions)

// WithCatalog records each written table in a catalog.
func WithCatalog(c catalog.Catalog) PipelineOption {
	return func(o *pipelineOptions) {
		o.catalog = c
	}
}

// WithCompression sets the codec for written tables.
// The default is table.CompressionZSTD.
func WithCompression(c table.Compression) PipelineOption {
	return func(o *pipelineOptions) {
		o.compression = c
	}
}

// Pipeline reads XYZ datasets from a blob store, featurizes them, and
// writes the resulting table back, optionally committing a catalog entry.
type Pipeline struct {
	reader     *xyz.Reader
	featurizer *Featurizer
	store      blobstore.BlobStore
	opts       *pipelineOptions
}

// NewPipeline creates a pipeline. reader supplies the geometries, store
// receives the written tables.
func NewPipeline(reader *xyz.Reader, featurizer *Featurizer, store blobstore.BlobStore, optFns ...PipelineOption) *Pipeline {
	opts := &pipelineOptions{
		compression: table.CompressionZSTD,
	}
	for _, fn := range optFns {
		fn(opts)
	}

	return &Pipeline{
		reader:     reader,
		featurizer: featurizer,
		store:      store,
		opts:       opts,
	}
}

// Run reads every file matching pattern, featurizes the batch, and writes
// the table under "<dataset>/<variant>". Rows follow sorted file-name
// order. The returned entry describes the written table; its Version is
// zero when no catalog is configured.
func (p *Pipeline) Run(ctx context.Context, pattern, dataset string) (*catalog.Entry, error) {
	logger := p.featurizer.opts.logger.WithDataset(dataset)
	metrics := p.featurizer.opts.metricsCollector

	files, _, err := p.reader.ReadAll(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoMolecules
	}

	batch := make([]*geometry.Molecule, len(files))
	for i, f := range files {
		batch[i] = f.Molecule
	}

	tbl, err := p.featurizer.Represent(ctx, batch...)
	if err != nil {
		return nil, err
	}

	base := path.Join(dataset, strings.ToLower(p.featurizer.variantName()))
	object := table.FileName(base, p.opts.compression)

	writeStart := time.Now()
	err = table.Save(ctx, p.store, base, tbl, p.opts.compression)
	metrics.RecordWrite(time.Since(writeStart), err)
	logger.LogWrite(ctx, object, tbl.NumRows(), tbl.NumColumns(), err)
	if err != nil {
		return nil, err
	}

	entry := &catalog.Entry{
		Dataset: dataset,
		Object:  object,
		Variant: p.featurizer.variantName(),
		Rows:    tbl.NumRows(),
		Columns: tbl.NumColumns(),
	}

	if p.opts.catalog != nil {
		if err := p.opts.catalog.Commit(ctx, entry); err != nil {
			return nil, err
		}
	}

	return entry, nil
}
