package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/dodge/ecs"
	"github.com/plus3/dodge/ecs/debugui"
	"github.com/plus3/dodge/internal/game"
)

func spawnSessionWindow(storage *ecs.Storage) {
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			var session *game.Session
			var timer *game.SpawnTimer
			if !storage.ReadSingleton(&session) {
				return
			}
			storage.ReadSingleton(&timer)

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(300, 80), imgui.CondOnce)

			if imgui.BeginV("Session", nil, 0) {
				imgui.Text(fmt.Sprintf("Seed: %d", session.Seed))
				imgui.Text(fmt.Sprintf("Time: %.1fs  Frames: %d", session.Elapsed, session.Frames))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Spawned: %d  Despawned: %d", session.Spawned, session.Despawned))
				imgui.Text(fmt.Sprintf("Alive: %d  Peak: %d", session.Alive, session.PeakAlive))
				imgui.Text(fmt.Sprintf("Contacts: %d", session.Contacts))
				if timer != nil {
					imgui.Separator()
					imgui.Text(fmt.Sprintf("Next spawn in %.2fs (dropped %d)", timer.Remaining(), timer.Dropped()))
				}
			}
			imgui.End()
		},
	})
}
