package state

import "github.com/atomicstack/menuz/internal/scene"

// SceneStore holds the scene currently driving the UI.
type SceneStore interface {
	Scene() *scene.Scene
	SetScene(*scene.Scene)
	Source() string
	SetSource(string)
	Generation() int
}

type sceneStore struct {
	scene      *scene.Scene
	source     string
	generation int
}

func NewSceneStore() SceneStore {
	return &sceneStore{}
}

func (s *sceneStore) Scene() *scene.Scene {
	return s.scene
}

// SetScene replaces the current scene and bumps the generation counter.
func (s *sceneStore) SetScene(sc *scene.Scene) {
	s.scene = sc
	s.generation++
}

func (s *sceneStore) Source() string {
	return s.source
}

func (s *sceneStore) SetSource(source string) {
	s.source = source
}

func (s *sceneStore) Generation() int {
	return s.generation
}
