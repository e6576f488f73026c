package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errBusy = errors.New("resource busy")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if data, hit, err := c.Get(ctx, "key"); hit || data != nil || err != nil {
		t.Errorf("Get() = %q, %v, %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "viewgrid"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("hit on an empty cache")
	}
	if err := c.Set(ctx, "png", []byte{0x89, 'P', 'N', 'G'}, 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "png")
	if err != nil || !hit || string(data) != "\x89PNG" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "png"); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "png"); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}
	if _, hit, _ := c.Get(ctx, "png"); hit {
		t.Error("hit after delete")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Clear() = %d, %v; want 3, nil", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("hit after clear")
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left in the cache root", len(entries))
	}
	if n, _ := c.Clear(ctx); n != 0 {
		t.Errorf("second Clear() = %d, want 0", n)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want a silent miss", hit, err)
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if h != Hash([]byte("hello")) {
		t.Error("Hash is not deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs share a hash")
	}
	if len(h) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	l1 := k.LayoutKey("abc", LayoutKeyOpts{Rows: 2, Cols: 3, Size: 300})
	l2 := k.LayoutKey("abc", LayoutKeyOpts{Rows: 2, Cols: 3, Size: 300, ShareCamera: true})
	if l1 == l2 || !strings.HasPrefix(l1, "layout:") {
		t.Errorf("layout keys %q / %q", l1, l2)
	}

	png := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png", Width: 600, Height: 600})
	svg := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Width: 600, Height: 600})
	if png == svg || !strings.HasSuffix(png, ".png") {
		t.Errorf("artifact keys %q / %q", png, svg)
	}
	if png != k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png", Width: 600, Height: 600}) {
		t.Error("artifact key not stable")
	}
}

func TestScopedKeyer(t *testing.T) {
	tests := []struct {
		name  string
		inner Keyer
	}{
		{"default inner", NewDefaultKeyer()},
		{"nil inner", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewScopedKeyer(tt.inner, "v1.2.0:")
			want := "v1.2.0:" + NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{Format: "dot"})
			if got := k.ArtifactKey("h", ArtifactKeyOpts{Format: "dot"}); got != want {
				t.Errorf("ArtifactKey() = %q, want %q", got, want)
			}
			if got := k.LayoutKey("h", LayoutKeyOpts{}); !strings.HasPrefix(got, "v1.2.0:layout:") {
				t.Errorf("LayoutKey() = %q", got)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(errBusy)
	if !IsRetryable(err) || !errors.Is(err, errBusy) || err.Error() != errBusy.Error() {
		t.Errorf("Retryable(errBusy) = %v", err)
	}
	if IsRetryable(errBusy) {
		t.Error("plain error reported retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, true, 1, false},
		{"retry once", 1, true, 2, false},
		{"permanent", 5, false, 1, true},
		{"exhausted", 5, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return Retryable(errBusy)
				}
				return errBusy
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr && !errors.Is(err, errBusy) {
				t.Errorf("error %v does not wrap the cause", err)
			}
		})
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(errBusy) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
