package system

import (
	"log"
	"path/filepath"

	"github.com/milk9111/dashmotion/ecs"
	"github.com/milk9111/dashmotion/ecs/component"
	"github.com/milk9111/dashmotion/motion"
	"github.com/milk9111/dashmotion/prefabs"
)

// ChangeSource reports files changed since the last call. prefabs.Watcher
// implements it.
type ChangeSource interface {
	Drain() []string
}

// ConfigBuilder rebuilds the motion config for a prefab file.
type ConfigBuilder func(prefab string) (motion.Config, error)

// MotionReloadSystem swaps rebuilt configs into live motion controllers when
// their prefab or any curve script changes. Motion state is kept; a config
// that fails to build or validate is logged and the old one stays.
type MotionReloadSystem struct {
	source ChangeSource
	build  ConfigBuilder
}

func NewMotionReloadSystem(source ChangeSource, build ConfigBuilder) *MotionReloadSystem {
	return &MotionReloadSystem{source: source, build: build}
}

func (s *MotionReloadSystem) Update(w *ecs.World) {
	if w == nil || s.source == nil || s.build == nil {
		return
	}

	changed := s.source.Drain()
	if len(changed) == 0 {
		return
	}

	specs := make(map[string]struct{})
	scripts := false
	for _, path := range changed {
		switch {
		case prefabs.IsScriptFile(path):
			scripts = true
		case prefabs.IsSpecFile(path):
			specs[filepath.Base(path)] = struct{}{}
		}
	}

	configs := make(map[string]motion.Config)
	failed := make(map[string]struct{})

	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if m.Controller == nil || m.Prefab == "" {
			return
		}
		if _, ok := specs[m.Prefab]; !ok && !scripts {
			return
		}
		if _, ok := failed[m.Prefab]; ok {
			return
		}

		cfg, ok := configs[m.Prefab]
		if !ok {
			built, err := s.build(m.Prefab)
			if err != nil {
				log.Printf("prefabs: reload %s: %v", m.Prefab, err)
				failed[m.Prefab] = struct{}{}
				return
			}
			cfg = built
			configs[m.Prefab] = cfg
		}

		if err := m.Controller.SetConfig(cfg); err != nil {
			log.Printf("prefabs: reload %s: %v", m.Prefab, err)
			return
		}
		log.Printf("prefabs: reloaded %s for entity %s", m.Prefab, e)
		w.Events().Push(ecs.Event{Type: ecs.EventConfigReloaded, Data: m.Prefab})
	})
}
