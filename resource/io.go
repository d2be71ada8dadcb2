package resource

import (
	"context"
	"io"
)

// LimitedReader wraps an io.Reader so reads respect the controller's IO
// budget. The wait is sized by the buffer, the upper bound of the read.
type LimitedReader struct {
	ctx context.Context
	rc  *Controller
	r   io.Reader
}

// NewLimitedReader creates a rate-limited reader.
func NewLimitedReader(ctx context.Context, rc *Controller, r io.Reader) *LimitedReader {
	return &LimitedReader{
		ctx: ctx,
		rc:  rc,
		r:   r,
	}
}

func (r *LimitedReader) Read(p []byte) (int, error) {
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// LimitedWriter wraps an io.Writer so writes respect the controller's IO
// budget.
type LimitedWriter struct {
	ctx context.Context
	rc  *Controller
	w   io.Writer
}

// NewLimitedWriter creates a rate-limited writer.
func NewLimitedWriter(ctx context.Context, rc *Controller, w io.Writer) *LimitedWriter {
	return &LimitedWriter{
		ctx: ctx,
		rc:  rc,
		w:   w,
	}
}

func (w *LimitedWriter) Write(p []byte) (int, error) {
	if err := w.rc.AcquireIO(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}
