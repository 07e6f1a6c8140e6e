package fsutil_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdwarehouse/pkg/fsutil"
)

func FuzzWriteThenRead(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("# Title\n\nBody\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "doc.md")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path, int64(len(content)))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}
		if info.Digest() != fsutil.Digest(content) {
			t.Fatal("digest mismatch")
		}
	})
}
