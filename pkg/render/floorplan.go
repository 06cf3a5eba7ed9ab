package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/floorkit/hbstar/pkg/module"
)

const (
	floorplanMargin    = 10.0
	fontHeightRatio    = 0.6
	fontWidthRatio     = 0.85
	fontCharWidth      = 0.55
	fontSizeMin        = 8.0
	fontSizeMax        = 20.0
	floorplanPaletteSz = 6
)

var floorplanPalette = [floorplanPaletteSz]string{
	"#cfe8ff", "#ffe1c2", "#d4f7d4", "#f7d4e8", "#e4d4f7", "#fff3bf",
}

// RenderFloorplan draws mods as an SVG of their placed rectangles at 1:1
// scale, on a canvas sized to the floorplan's extent plus a uniform margin.
// Module fill color cycles through a small fixed palette by each module's
// position in name order, so re-renders of the same input are visually
// stable across runs.
func RenderFloorplan(mods *module.Set) []byte {
	all := mods.All()

	maxX, maxY := 0, 0
	for _, m := range all {
		if r := m.X + m.EffectiveWidth(); r > maxX {
			maxX = r
		}
		if t := m.Y + m.EffectiveHeight(); t > maxY {
			maxY = t
		}
	}
	if maxX == 0 {
		maxX = 1
	}
	if maxY == 0 {
		maxY = 1
	}
	canvasW := float64(maxX) + 2*floorplanMargin
	canvasH := float64(maxY) + 2*floorplanMargin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		canvasW, canvasH, canvasW, canvasH)
	buf.WriteString(`  <rect x="0" y="0" width="100%" height="100%" fill="white"/>` + "\n")

	for i, m := range all {
		drawModuleRect(&buf, m, i, floorplanMargin, canvasH)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// drawModuleRect writes one module's <rect> and centered label. SVG's
// origin is top-left, but floorplan coordinates are bottom-left (Y grows
// upward per §3), so Y is flipped around canvasH.
func drawModuleRect(buf *bytes.Buffer, m *module.Module, index int, margin, canvasH float64) {
	w, h := float64(m.EffectiveWidth()), float64(m.EffectiveHeight())
	x := float64(m.X) + margin
	yTop := canvasH - margin - float64(m.Y) - h

	fill := floorplanPalette[index%floorplanPaletteSz]
	fmt.Fprintf(buf, `  <rect id=%q x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
		"block-"+m.Name, x, yTop, w, h, fill)

	label := escapeXML(m.Name)
	fontSize := floorplanFontSize(w, h, len(m.Name))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif">%s</text>`+"\n",
		x+w/2, yTop+h/2, fontSize, label)
}

func floorplanFontSize(w, h float64, nameLen int) float64 {
	n := math.Max(1, float64(nameLen))
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (n * fontCharWidth)
	return math.Max(fontSizeMin, math.Min(fontSizeMax, math.Min(byHeight, byWidth)))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
