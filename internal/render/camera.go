package render

import "github.com/plus3/dodge/internal/game"

// WorldToScreen maps a world point (origin at the camera, y up) to screen
// pixels (origin top-left, y down) for a w x h screen.
func WorldToScreen(cam game.Camera, p game.Position, w, h int) (float64, float64) {
	zoom := cam.Zoom
	if zoom == 0 {
		zoom = 1
	}
	sx := float64(w)/2 + (p.X-cam.X)*zoom
	sy := float64(h)/2 - (p.Y-cam.Y)*zoom
	return sx, sy
}
