package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"src.lessondeck.sh/pkg/store"
	"src.lessondeck.sh/pkg/store/storedefs"
	"src.lessondeck.sh/pkg/store/storetest"
	"src.lessondeck.sh/pkg/testutil"
)

func TestBookmark(t *testing.T) {
	storetest.TestBookmark(t, store.MustTempStore(t))
}

func TestVisit(t *testing.T) {
	storetest.TestVisit(t, store.MustTempStore(t))
}

func TestDeck(t *testing.T) {
	storetest.TestDeck(t, store.MustTempStore(t))
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dbname := filepath.Join(testutil.TempDir(t), "db")

	st, err := store.Open(dbname)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SetBookmark("deck", "1-basic"); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = store.Open(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if id, err := st.Bookmark("deck"); id != "1-basic" || err != nil {
		t.Errorf("Bookmark after reopening -> (%q, %v), want (\"1-basic\", nil)", id, err)
	}
}

func TestOpen_TimesOutOnLockedDatabase(t *testing.T) {
	dbname := filepath.Join(testutil.TempDir(t), "db")
	st, err := store.Open(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if _, err := store.Open(dbname); err == nil {
		t.Error("opening a locked database succeeded")
	}
}

func TestOpen_BadPath(t *testing.T) {
	_, err := store.Open(filepath.Join(testutil.TempDir(t), "no", "such", "dir", "db"))
	if err == nil {
		t.Error("Open in a nonexistent directory succeeded")
	}
}

func TestBookmark_ErrNoBookmarkIsExported(t *testing.T) {
	st := store.MustTempStore(t)
	_, err := st.Bookmark("deck")
	if !errors.Is(err, store.ErrNoBookmark) || !errors.Is(err, storedefs.ErrNoBookmark) {
		t.Errorf("Bookmark on empty store -> error %v, want ErrNoBookmark", err)
	}
}
