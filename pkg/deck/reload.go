package deck

import "sync/atomic"

// Reloader holds the current Index of a deck and replaces it wholesale on
// request. Readers call Index and never block; a failed reload keeps the
// previous snapshot.
type Reloader struct {
	load    func() (*Index, error)
	current atomic.Pointer[Index]
}

// NewReloader returns a Reloader that builds indices with load. It does not
// call load; call Reload to build the first snapshot.
func NewReloader(load func() (*Index, error)) *Reloader {
	return &Reloader{load: load}
}

// Reload builds a new Index and publishes it. On error the current Index is
// left in place and the error is returned.
func (r *Reloader) Reload() error {
	idx, err := r.load()
	if err != nil {
		logger.Printf("reload failed, keeping previous index: %v", err)
		return err
	}
	r.current.Store(idx)
	logger.Printf("reloaded index of %d units", idx.Len())
	return nil
}

// Index returns the current snapshot, or nil if no reload has succeeded yet.
func (r *Reloader) Index() *Index { return r.current.Load() }
