package localstore

import (
	"fmt"
	"os"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	f, err := os.CreateTemp("", "sqlite-storage-")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	t.Cleanup(func() {
		f.Close()
		os.Remove(f.Name())
	})

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("failed to connect sqlite db: %v", err)
	}

	s, err := New(db, "teststore")
	if err != nil {
		t.Fatalf("failed to create new store: %v", err)
	}
	return s
}

func TestStoreBadName(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "bad name", "bad-name", "bad1"} {
		if _, err := New(db, name); err != ErrBadName {
			t.Errorf("name %q: expected ErrBadName, received %v", name, err)
		}
	}
}

func TestStoreReadEmpty(t *testing.T) {
	s := setupTestStore(t)

	var nothing struct{}
	if err := s.Get("some key", &nothing); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestStoreWriteAndReadPrimitive(t *testing.T) {
	s := setupTestStore(t)

	key, val := "key", 1337
	if err := s.Set(key, val); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	var rtVal int
	if err := s.Get(key, &rtVal); err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if val != rtVal {
		t.Fatalf("expected: %v, actual: %v", val, rtVal)
	}
}

func TestStoreWriteAndReadStruct(t *testing.T) {
	s := setupTestStore(t)

	type snapshot struct {
		Name     string
		Progress int
		Revealed []int
	}

	val := snapshot{Name: "vacation photo", Progress: 30, Revealed: []int{3, 14, 15}}
	if err := s.Set("project", val); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	var rt snapshot
	if err := s.Get("project", &rt); err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if fmt.Sprint(val) != fmt.Sprint(rt) {
		t.Fatalf("expected: %v, actual: %v", val, rt)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Set("key", "first"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("key", "second"); err != nil {
		t.Fatal(err)
	}

	var rt string
	if err := s.Get("key", &rt); err != nil {
		t.Fatal(err)
	}
	if rt != "second" {
		t.Fatalf("expected overwritten value, received %q", rt)
	}
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Set("key", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("key"); err != nil {
		t.Fatal(err)
	}
	if err := s.Get("key", nil); err != ErrNotFound {
		t.Fatalf("expected not found after delete, received %v", err)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	data := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	if err := s.PutBlob("img", data); err != nil {
		t.Fatalf("failed to put blob: %v", err)
	}

	rt, err := s.GetBlob("img")
	if err != nil {
		t.Fatalf("failed to get blob: %v", err)
	}
	if string(rt) != string(data) {
		t.Fatalf("blob mismatch: %v != %v", rt, data)
	}

	if err := s.DeleteBlob("img"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetBlob("img"); err != ErrNotFound {
		t.Fatalf("expected not found after delete, received %v", err)
	}
}
