package scenes

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func nextChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a change")
	}
	return Change{}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("yard.yaml", "name: yard\n")
	c := nextChange(t, w)
	if c.Kind != SceneChanged || c.Name() != "yard" {
		t.Fatalf("unexpected change %+v", c)
	}

	// let the debounce window for yard.yaml pass, then check that
	// unrelated files are skipped
	time.Sleep(150 * time.Millisecond)
	write("notes.txt", "ignored")
	write("yard.tengo", "x := 1\n")
	for {
		c = nextChange(t, w)
		if c.Kind == ScriptChanged {
			break
		}
		if c.Name() != "yard" {
			t.Fatalf("unexpected change %+v", c)
		}
	}
	if c.Name() != "yard" || filepath.Ext(c.Path) != ".tengo" {
		t.Fatalf("unexpected script change %+v", c)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
