package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/menuz/internal/backend"
	"github.com/atomicstack/menuz/internal/menu"
	"github.com/atomicstack/menuz/internal/scene"
	"github.com/atomicstack/menuz/internal/state"
)

func parse(t *testing.T, src string) *scene.Definition {
	t.Helper()
	def, err := scene.Parse([]byte(src), scene.FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return def
}

func setup(t *testing.T) (*Dispatcher, state.SceneStore, *menu.Registry) {
	t.Helper()
	reg := menu.NewRegistry(nil)
	store := state.NewSceneStore()
	def := parse(t, "root: a\npanels: [{name: a}, {name: b}]\n")
	sc, err := scene.Build(def, reg, scene.Hooks{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sc.OpenRoot()
	store.SetScene(sc)
	return New(store, reg, scene.Hooks{}), store, reg
}

func TestHandleReloadRestoresOpenPanels(t *testing.T) {
	d, store, reg := setup(t)
	old := store.Scene()
	b, _ := old.Panel("b")
	b.Menu.OpenImmediate()

	res := d.Handle(backend.Event{Kind: backend.KindScene, Data: parse(t, "root: c\npanels: [{name: b}, {name: c}]\n")})
	if !res.SceneReloaded || res.Err != nil {
		t.Fatalf("expected reload, got %+v", res)
	}
	if store.Scene() == old || store.Generation() != 2 {
		t.Fatalf("expected new scene in store")
	}
	if res.Panels != 2 || res.Open != 1 {
		t.Fatalf("expected 2 panels and 1 open, got %+v", res)
	}
	open := reg.OpenMenus()
	if open[0].Name() != "b" {
		t.Fatalf("expected b restored, got %s", open[0].Name())
	}
	if open[0].Registry() != reg || store.Scene().Registry() != reg {
		t.Fatalf("expected menus adopted by the shared registry")
	}
	if _, err := store.Scene().Spawn("c"); err != nil || reg.Len() != 3 {
		t.Fatalf("expected spawn into shared registry, len=%d err=%v", reg.Len(), err)
	}
}

func TestHandleOpensRootWhenNothingSurvives(t *testing.T) {
	d, _, reg := setup(t)
	res := d.Handle(backend.Event{Kind: backend.KindScene, Data: parse(t, "root: y\npanels: [{name: x}, {name: y}]\n")})
	if res.Open != 1 || reg.OpenMenus()[0].Name() != "y" {
		t.Fatalf("expected root y open, got %+v", res)
	}
}

func TestHandleErrorKeepsScene(t *testing.T) {
	d, store, reg := setup(t)
	old := store.Scene()
	want := errors.New("broken file")
	res := d.Handle(backend.Event{Kind: backend.KindScene, Err: want})
	if res.SceneReloaded || !errors.Is(res.Err, want) {
		t.Fatalf("expected error result, got %+v", res)
	}
	res = d.Handle(backend.Event{Kind: backend.KindScene, Data: "nonsense"})
	if res.Err == nil {
		t.Fatalf("expected payload error")
	}
	if store.Scene() != old || reg.Len() != 2 {
		t.Fatalf("expected running scene to be untouched")
	}
}
