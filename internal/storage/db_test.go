package storage

import (
	"bytes"
	"errors"
	"testing"
)

// testDB runs the shared test suite against a DB implementation.
func testDB(t *testing.T, db DB) {
	t.Helper()

	t.Run("PutAndGet", func(t *testing.T) {
		if err := db.Put([]byte("key1"), []byte("value1")); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		val, err := db.Get([]byte("key1"))
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if !bytes.Equal(val, []byte("value1")) {
			t.Errorf("Get() = %q, want %q", val, "value1")
		}
	})

	t.Run("GetNonexistent", func(t *testing.T) {
		_, err := db.Get([]byte("nonexistent"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Has", func(t *testing.T) {
		if err := db.Put([]byte("exists"), []byte("yes")); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		ok, err := db.Has([]byte("exists"))
		if err != nil {
			t.Fatalf("Has() error: %v", err)
		}
		if !ok {
			t.Error("Has() = false for existing key")
		}

		ok, err = db.Has([]byte("missing"))
		if err != nil {
			t.Fatalf("Has() error: %v", err)
		}
		if ok {
			t.Error("Has() = true for missing key")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		db.Put([]byte("ow"), []byte("first"))
		db.Put([]byte("ow"), []byte("second"))

		val, err := db.Get([]byte("ow"))
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if !bytes.Equal(val, []byte("second")) {
			t.Errorf("Get() = %q, want %q", val, "second")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db.Put([]byte("gone"), []byte("soon"))
		if err := db.Delete([]byte("gone")); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
		if _, err := db.Get([]byte("gone")); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ForEachPrefix", func(t *testing.T) {
		db.Put([]byte("p/a"), []byte("1"))
		db.Put([]byte("p/b"), []byte("2"))
		db.Put([]byte("q/c"), []byte("3"))

		var keys []string
		err := db.ForEach([]byte("p/"), func(key, value []byte) error {
			keys = append(keys, string(key))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach() error: %v", err)
		}
		if len(keys) != 2 {
			t.Errorf("ForEach() visited %d keys, want 2: %v", len(keys), keys)
		}
		for _, k := range keys {
			if k != "p/a" && k != "p/b" {
				t.Errorf("ForEach() visited unexpected key %q", k)
			}
		}
	})

	t.Run("ForEachEarlyStop", func(t *testing.T) {
		db.Put([]byte("s/a"), []byte("1"))
		db.Put([]byte("s/b"), []byte("2"))

		stop := errors.New("stop")
		count := 0
		err := db.ForEach([]byte("s/"), func(key, value []byte) error {
			count++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("ForEach() error = %v, want stop sentinel", err)
		}
		if count != 1 {
			t.Errorf("ForEach() visited %d keys after stop, want 1", count)
		}
	})
}

func TestMemoryDB(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	testDB(t, db)
}

func TestBadgerDB(t *testing.T) {
	db, err := NewBadger(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	defer db.Close()
	testDB(t, db)
}
