package store

import (
	"path/filepath"

	"src.lessondeck.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a database in a temporary
// directory. The Store is closed and the directory removed when the test
// finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st, err := Open(filepath.Join(dir, "lessondeck.db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
