package fsutil_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdwarehouse/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.json")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte(`{"a":1}`), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("content = %q", got)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("overwrites existing file with mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.json")
		if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
		stat, _ := os.Stat(path)
		if stat.Mode().Perm() != 0o600 {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), 0o600)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.json")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := fsutil.WriteAtomic(ctx, path, []byte("content"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not have been created")
		}
	})

	t.Run("fails for missing parent", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.json")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("content"), 0); err == nil {
			t.Fatal("expected error for invalid path")
		}
	})
}

func TestWriteAtomicFunc(t *testing.T) {
	t.Parallel()

	t.Run("streams writer output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")
		err := fsutil.WriteAtomicFunc(context.Background(), path, 0, func(w io.Writer) error {
			for range 3 {
				if _, err := io.WriteString(w, "line\n"); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WriteAtomicFunc() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != strings.Repeat("line\n", 3) {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("failed write keeps original and leaves no temp file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		boom := errors.New("boom")
		err := fsutil.WriteAtomicFunc(context.Background(), path, 0, func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped boom, got %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "original" {
			t.Errorf("original replaced: %q", got)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("temp file left behind: %v", entries)
		}
	})
}
