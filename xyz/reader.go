package xyz

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/hupe1980/molfeat/blobstore"
	"github.com/hupe1980/molfeat/geometry"
	"github.com/hupe1980/molfeat/resource"
	"golang.org/x/sync/errgroup"
)

// ErrBadExtension indicates a pattern that does not end in ".xyz".
type ErrBadExtension struct {
	Ext string
}

func (e *ErrBadExtension) Error() string {
	if e.Ext == "" {
		return "file extension not indicated, pattern must end in .xyz"
	}
	return fmt.Sprintf("file extension %q not supported, xyz is the only acceptable extension", e.Ext)
}

// File is one parsed dataset entry.
type File struct {
	// Name is the blob name the molecule was read from.
	Name string

	// Molecule is the parsed geometry.
	Molecule *geometry.Molecule
}

// Reader reads XYZ datasets out of a blob store.
type Reader struct {
	store     blobstore.BlobStore
	ctrl      *resource.Controller
	parseOpts []func(*Options)
}

// NewReader creates a dataset reader. ctrl bounds concurrency and IO
// throughput; nil means unbounded IO with a single parser.
func NewReader(store blobstore.BlobStore, ctrl *resource.Controller, optFns ...func(*Options)) *Reader {
	return &Reader{
		store:     store,
		ctrl:      ctrl,
		parseOpts: optFns,
	}
}

// ReadAll reads every blob whose name matches the glob pattern, in
// deterministic sorted-name order. It returns the parsed files and the
// largest atom count observed, for sizing padded representations.
func (r *Reader) ReadAll(ctx context.Context, pattern string) ([]File, int, error) {
	if ext := path.Ext(pattern); ext != ".xyz" {
		return nil, 0, &ErrBadExtension{Ext: ext}
	}

	names, err := r.store.List(ctx, "")
	if err != nil {
		return nil, 0, err
	}

	var matched []string
	for _, name := range names {
		ok, err := path.Match(pattern, name)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)

	files := make([]File, len(matched))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range matched {
		g.Go(func() error {
			if err := r.ctrl.AcquireReader(gctx); err != nil {
				return err
			}
			defer r.ctrl.ReleaseReader()

			mol, err := r.readOne(gctx, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			files[i] = File{Name: name, Molecule: mol}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	maxAtoms := 0
	for _, f := range files {
		if n := f.Molecule.NumAtoms(); n > maxAtoms {
			maxAtoms = n
		}
	}

	return files, maxAtoms, nil
}

func (r *Reader) readOne(ctx context.Context, name string) (*geometry.Molecule, error) {
	blob, err := r.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	if err := r.ctrl.AcquireMemory(ctx, blob.Size()); err != nil {
		return nil, err
	}
	defer r.ctrl.ReleaseMemory(blob.Size())

	body := io.NewSectionReader(blob, 0, blob.Size())
	return Parse(resource.NewLimitedReader(ctx, r.ctrl, body), r.parseOpts...)
}
