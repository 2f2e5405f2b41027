package testutil

import (
	"database/sql"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/contestarena/arena/internal/sqliteutil"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireDB opens a throwaway sqlite database in a temp directory and
// returns it with a cleanup func. Using a real file instead of :memory:
// keeps the busy-timeout and WAL behavior identical to production.
func AcquireDB(t TestLog) (*sql.DB, func()) {
	dir, err := ioutil.TempDir("", "arena-tests")
	if err != nil {
		t.Fatal(err)
	}
	db, err := sqliteutil.Open(filepath.Join(dir, "arena.db"))
	if err != nil {
		t.Fatal(err)
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Log("unable to close database", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
