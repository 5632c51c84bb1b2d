package entity

import (
	"fmt"

	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/prefabs"
)

func NewCamera(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	zoom := spec.Camera.Zoom
	if zoom == 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		X:      -common.ScreenWidth / 2 / zoom,
		Y:      -common.ScreenHeight / 2 / zoom,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	recovery := spec.Camera.Recovery
	if recovery == 0 {
		recovery = 10
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Zoom:     zoom,
		Width:    common.ScreenWidth,
		Height:   common.ScreenHeight,
		Margin:   spec.Camera.Margin,
		Recovery: recovery,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
