package game

import (
	"log/slog"

	"infinicity/internal/city"
	"infinicity/internal/scene"
)

// NewEventLog returns an event bus with the desktop's side effects
// subscribed: debug logging of every recycle and the matching sound.
func NewEventLog(log *slog.Logger, audio *AudioSystem) *scene.EventBus {
	bus := scene.NewEventBus()
	bus.Subscribe(scene.EventGridReset, func(scene.Event) {
		log.Debug("grid initialized", "cells", city.GridCols*city.GridRows)
		audio.Play(SoundReset)
	})
	bus.Subscribe(scene.EventRowRecycled, func(e scene.Event) {
		log.Debug("row recycled",
			"transition", e.Transition.String(),
			"boundary", e.Boundary,
			"shift", e.Shift,
		)
		if e.Transition == city.TransitionForward {
			audio.Play(SoundWhooshForward)
		} else {
			audio.Play(SoundWhooshBack)
		}
	})
	return bus
}
