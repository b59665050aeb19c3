// Package overlay draws the status panel on top of a frame.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gocv.io/x/gocv"

	"webcam-fx/internal/catalog"
	"webcam-fx/internal/selection"
)

// Title is shown on the panel and in the window title.
const Title = "WesWorld FX"

// Layout sizes are given at this reference resolution and scaled to the frame.
const (
	refWidth  = 1280.0
	refHeight = 720.0
	panelW    = 320.0
	panelH    = 450.0
	bgAlpha   = 0.85
)

var (
	bgColor        = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	textColor      = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	highlightColor = color.RGBA{R: 82, G: 80, B: 239, A: 255}
	mutedColor     = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	statusColor    = color.RGBA{G: 255, A: 255}
)

var controls = [][2]string{
	{"H", "Toggle UI"},
	{"SPACE", "Auto-advance"},
	{"<- ->", "Navigate"},
	{"Q", "Quit"},
}

const font = gocv.FontHersheySimplex

// Renderer draws the panel. It holds only read-only configuration.
type Renderer struct {
	catalog  *catalog.Catalog
	interval time.Duration
}

func New(c *catalog.Catalog, interval time.Duration) *Renderer {
	return &Renderer{catalog: c, interval: interval}
}

// Render returns a copy of frame with the panel drawn on it. Neither frame nor
// st is modified, and equal inputs give equal outputs.
func (r *Renderer) Render(frame gocv.Mat, st selection.State) gocv.Mat {
	out := frame.Clone()
	if out.Empty() {
		return out
	}

	w, h := out.Cols(), out.Rows()
	s := math.Min(float64(w)/refWidth, float64(h)/refHeight)
	px := func(v float64) int { return int(v * s) }

	boxW := px(panelW)
	boxH := int(math.Min(panelH*s, float64(h-40)))
	padding := px(12)
	textX := px(18)
	box := image.Rect(padding, padding, padding+boxW, padding+max(0, boxH))

	drawPanel(&out, box, max(2, px(3)))

	small := math.Max(0.4, 0.6*s)
	medium := math.Max(0.45, 0.55*s)
	large := math.Max(0.6, 0.7*s)
	titleScale := math.Max(0.5, 0.65*s)
	thin := max(1, int(s))
	bold := max(2, int(2*s))
	lineH := float64(px(22))

	y := px(15) + int(lineH*0.8)

	titleSize := gocv.GetTextSize(Title, font, titleScale, bold)
	if textX+titleSize.X > boxW-padding {
		titleScale = math.Max(0.4, titleScale*0.9)
		titleSize = gocv.GetTextSize(Title, font, titleScale, bold)
	}
	text(&out, Title, textX, y, titleScale, highlightColor, bold)
	y += titleSize.Y + int(lineH*0.5)

	current := r.catalog.At(st.Index)
	text(&out, "Filter: "+current.Name, textX, y, large, highlightColor, bold)
	y += int(lineH * 1.5)

	text(&out, "Controls:", textX, y, small, textColor, max(1, int(1.5*s)))
	y += int(lineH * 1.2)
	for _, c := range controls {
		text(&out, fmt.Sprintf("  %s: %s", c[0], c[1]), textX, y, medium, textColor, thin)
		y += int(lineH * 0.9)
	}

	if st.NumericBuffer != "" {
		text(&out, r.pendingLine(st.NumericBuffer), textX, y, medium, highlightColor, thin)
		y += int(lineH * 0.9)
	}
	y += int(lineH * 0.5)

	rowH := lineH * 0.85
	avail := float64(box.Max.Y - y)
	if st.AutoAdvance {
		avail -= lineH * 1.5
	}
	lines := 0
	if rowH > 0 {
		lines = int(avail / rowH)
	}

	start, end := ListWindow(st.Index, r.catalog.Len(), lines)
	above, below := listMarkers(start, end, r.catalog.Len())
	if above {
		text(&out, "  ...", textX, y, medium, mutedColor, thin)
		y += int(rowH)
	}
	for i := start; i < end; i++ {
		e := r.catalog.At(i)
		c, th, marker := textColor, thin, ""
		if i == st.Index {
			c, th, marker = highlightColor, max(2, int(1.5*s)), " [ACTIVE]"
		}
		text(&out, fmt.Sprintf("  %s: %s%s", r.catalog.DisplayLabel(i), e.Name, marker), textX, y, medium, c, th)
		y += int(rowH)
	}
	if below {
		text(&out, "  ...", textX, y, medium, mutedColor, thin)
		y += int(rowH)
	}

	if st.AutoAdvance {
		y += int(lineH * 0.5)
		text(&out, fmt.Sprintf("AUTO-ADVANCE: ON (%.1fs)", r.interval.Seconds()), textX, y, medium, statusColor, bold)
	}
	return out
}

func (r *Renderer) pendingLine(typed string) string {
	if idx, ok := r.catalog.ResolveDisplay(typed); ok {
		return fmt.Sprintf("Pending: %s -> %s", typed, r.catalog.At(idx).Name)
	}
	return fmt.Sprintf("Pending: %s (out of range)", typed)
}

// drawPanel blends the background into box and outlines it. box is clipped to
// the frame first; nothing is drawn when it falls outside.
func drawPanel(out *gocv.Mat, box image.Rectangle, border int) {
	clipped := box.Intersect(image.Rect(0, 0, out.Cols(), out.Rows()))
	if clipped.Empty() {
		return
	}

	roi := out.Region(clipped)
	defer roi.Close()
	bg := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(bgColor.B), float64(bgColor.G), float64(bgColor.R), 0),
		roi.Rows(), roi.Cols(), roi.Type())
	defer bg.Close()
	gocv.AddWeighted(roi, 1-bgAlpha, bg, bgAlpha, 0, &roi)

	gocv.Rectangle(out, box, highlightColor, border)
}

func text(out *gocv.Mat, s string, x, y int, scale float64, c color.RGBA, thickness int) {
	gocv.PutText(out, s, image.Pt(x, y), font, scale, c, thickness)
}

// WindowTitle is the title bar text for the current state.
func WindowTitle(st selection.State) string {
	t := Title + " - Press SPACE to auto-advance, Q to quit"
	if st.AutoAdvance {
		t += " [AUTO-ADVANCE ON]"
	}
	return t
}
