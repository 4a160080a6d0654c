package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/patchview/engine/assets/loaders"
)

const squareBez = "1\n1 1\n0 0 0 1 0 0\n0 1 0 1 1 0\n"

func newManager(t *testing.T) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("NewAssetManager() = %v", err)
	}
	t.Cleanup(func() { _ = am.Shutdown() })
	return am
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitReload(t *testing.T, am *AssetManager) ReloadEvent {
	t.Helper()
	select {
	case ev, ok := <-am.Events():
		if !ok {
			t.Fatal("Events() closed")
		}
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event within 5s")
	}
	return ReloadEvent{}
}

func TestLoadSniffsKind(t *testing.T) {
	dir := t.TempDir()
	bez := filepath.Join(dir, "square.txt")
	obj := filepath.Join(dir, "tri.txt")
	writeFile(t, bez, squareBez)
	writeFile(t, obj, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	am := newManager(t)
	m, err := am.Load(bez)
	if err != nil {
		t.Fatalf("Load(bez) = %v", err)
	}
	if m.Kind != loaders.KindBezier || len(m.Surfaces) != 1 {
		t.Errorf("bezier model = %v", m)
	}
	if info, ok := am.Info(bez); !ok || info.Kind != loaders.KindBezier {
		t.Errorf("Info(bez) = %+v, %v", info, ok)
	}

	m, err = am.Load(obj)
	if err != nil {
		t.Fatalf("Load(obj) = %v", err)
	}
	if m.Kind != loaders.KindWavefront || m.Mesh.TriangleCount() != 1 {
		t.Errorf("wavefront model = %v", m)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t)

	if _, err := am.Load(filepath.Join(dir, "missing.bez")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}

	empty := filepath.Join(dir, "empty.bez")
	writeFile(t, empty, "# nothing here\n")
	if _, err := am.Load(empty); !errors.Is(err, loaders.ErrEmptyModel) {
		t.Errorf("Load(empty) = %v, want ErrEmptyModel", err)
	}

	broken := filepath.Join(dir, "broken.bez")
	writeFile(t, broken, "1\n1 1\n0 0 0\n")
	if _, err := am.Load(broken); !errors.Is(err, loaders.ErrSyntax) {
		t.Errorf("Load(broken) = %v, want ErrSyntax", err)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.bez")
	writeFile(t, path, squareBez)

	am := newManager(t)
	first, err := am.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Watch(path); err != nil {
		t.Fatalf("Watch() = %v", err)
	}

	// A sibling file changing must not trigger a reload.
	writeFile(t, filepath.Join(dir, "other.bez"), squareBez)

	writeFile(t, path, "2\n"+squareBez[2:]+"1 1\n0 0 1 1 0 1\n0 1 1 1 1 1\n")
	ev := waitReload(t, am)
	if ev.Err != nil {
		t.Fatalf("reload error = %v", ev.Err)
	}
	if len(ev.Model.Surfaces) != 2 {
		t.Errorf("reloaded %d surfaces, want 2", len(ev.Model.Surfaces))
	}
	if ev.Model.ID == first.ID {
		t.Error("reloaded model kept the old ID")
	}

	writeFile(t, path, "1\n1 1\n0 0 0\n")
	ev = waitReload(t, am)
	if !errors.Is(ev.Err, loaders.ErrSyntax) || ev.Model != nil {
		t.Errorf("broken reload = (%v, %v), want ErrSyntax and no model", ev.Model, ev.Err)
	}
}

func TestShutdownClosesEvents(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if _, ok := <-am.Events(); ok {
		t.Error("Events() still open after Shutdown")
	}
	if err := am.Watch("x.bez"); !errors.Is(err, ErrClosed) {
		t.Errorf("Watch after Shutdown = %v, want ErrClosed", err)
	}
	if err := am.Shutdown(); err != nil {
		t.Errorf("second Shutdown() = %v", err)
	}
}
