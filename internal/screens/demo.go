package screens

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Demo parameters.
const (
	demoPoints    = 160
	demoSpin      = 45.0 // Degrees per second around Y
	demoTilt      = 20.0 // Fixed tilt around X
	demoCellRatio = 2.0  // Terminal cells are about twice as tall as wide
)

// demoEye is where the camera sits; it looks at the origin.
var demoEye = core.V3(2, 2, 2)

// depthShades go from nearest to farthest.
var depthShades = [...]struct {
	r rune
	c core.Color
}{
	{'@', core.ColorBrightWhite},
	{'o', core.ColorBrightCyan},
	{'+', core.ColorCyan},
	{'.', core.ColorBlue},
}

// camera is a perspective pinhole looking from eye toward the origin.
type camera struct {
	eye, right, up, forward core.Vec3
}

func newCamera(eye core.Vec3) camera {
	forward := eye.Scale(-1).Normalize()
	right := forward.Cross(core.V3(0, 1, 0)).Normalize()
	up := right.Cross(forward)
	return camera{eye: eye, right: right, up: up, forward: forward}
}

// project returns view-plane coordinates and depth of p. Points behind the
// camera report ok=false.
func (c camera) project(p core.Vec3) (x, y, depth float64, ok bool) {
	d := p.Sub(c.eye)
	depth = d.Dot(c.forward)
	if depth <= 0 {
		return 0, 0, 0, false
	}
	return d.Dot(c.right) / depth, d.Dot(c.up) / depth, depth, true
}

// Demo spins a unit sphere point cloud in front of a fixed camera.
// Any confirm, back or alternate input returns to the main menu.
type Demo struct {
	points []core.Vec3
	cam    camera
	angle  float64
	done   bool
}

// NewDemo builds the point cloud.
func NewDemo(_ *registry.Context) (registry.Screen, error) {
	return &Demo{points: spherePoints(demoPoints), cam: newCamera(demoEye)}, nil
}

// spherePoints spreads n points evenly over the unit sphere on a Fibonacci lattice.
func spherePoints(n int) []core.Vec3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]core.Vec3, n)
	for i := range pts {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		pts[i] = core.V3(r*math.Cos(theta), y, r*math.Sin(theta))
	}
	return pts
}

// Update implements registry.Screen.
func (d *Demo) Update(delta float64, in core.InputFrame) {
	d.angle = math.Mod(d.angle+demoSpin*delta, 360)
	if in.Has(core.ActionBack) || in.Has(core.ActionConfirm) || in.Has(core.ActionAlternate) {
		d.done = true
	}
}

// Draw implements registry.Screen.
func (d *Demo) Draw(dst *core.Screen, _ float64) {
	w, h := dst.Width(), dst.Height()
	scale := float64(min(w/2, h)) * 1.4
	cx, cy := float64(w)/2, float64(h)/2

	type plotted struct {
		x, y  int
		depth float64
	}
	pts := make([]plotted, 0, len(d.points))
	minDepth, maxDepth := math.Inf(1), math.Inf(-1)
	for _, p := range d.points {
		world := p.RotateY(d.angle).RotateX(demoTilt)
		px, py, depth, ok := d.cam.project(world)
		if !ok {
			continue
		}
		pts = append(pts, plotted{
			x:     int(math.Round(cx + px*scale*demoCellRatio)),
			y:     int(math.Round(cy - py*scale)),
			depth: depth,
		})
		minDepth = min(minDepth, depth)
		maxDepth = max(maxDepth, depth)
	}

	// Far points first so near ones overwrite them
	slices.SortFunc(pts, func(a, b plotted) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	span := maxDepth - minDepth
	for _, p := range pts {
		shade := 0
		if span > 0 {
			shade = int((p.depth - minDepth) / span * float64(len(depthShades)))
		}
		shade = core.Clamp(shade, 0, len(depthShades)-1)
		dst.SetColor(p.x, p.y, depthShades[shade].r, depthShades[shade].c)
	}

	dst.DrawTextCentered(0, "3D DEMO", core.ColorBrightWhite)
	dst.DrawTextCentered(h-1, "ESC  back to menu", core.ColorGray)
}

// IsDone implements registry.Screen.
func (d *Demo) IsDone() bool { return d.done }

// Dispose releases the point cloud.
func (d *Demo) Dispose() { d.points = nil }

func init() {
	registry.Register(registry.Demo, NewDemo)
}
