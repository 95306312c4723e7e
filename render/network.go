package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"protein-explorer/models"
)

const (
	imageWidth  = 800
	imageHeight = 600
	nodeRadius  = 24
	margin      = 70
)

// NetworkPNG lays out the interaction graph with a force-directed pass and
// rasterizes it. A graph with no edges still yields a valid image carrying
// an explanatory caption. Exact node placement is deterministic (seeded) but
// not part of any contract.
func NetworkPNG(edges []models.InteractionEdge) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ids := make(map[string]int64)
	var names []string
	g := simple.NewUndirectedGraph()
	nodeID := func(name string) int64 {
		if id, ok := ids[name]; ok {
			return id
		}
		id := int64(len(names))
		ids[name] = id
		names = append(names, name)
		g.AddNode(simple.Node(id))
		return id
	}
	for _, e := range edges {
		from, to := nodeID(e.From), nodeID(e.To)
		if from == to {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	if len(names) == 0 {
		dc.SetRGB(0.35, 0.35, 0.35)
		dc.DrawStringAnchored("No known interactions", imageWidth/2, imageHeight/2, 0.5, 0.5)
		return encodePNG(dc)
	}

	eades := layout.EadesR2{Repulsion: 1, Rate: 0.05, Updates: 100, Theta: 0.1, Src: rand.NewSource(1)}
	optimizer := layout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range ids {
		v := optimizer.Coord2(id)
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	spanX := maxX - minX
	if spanX == 0 {
		spanX = 1
	}
	spanY := maxY - minY
	if spanY == 0 {
		spanY = 1
	}
	pos := func(id int64) (float64, float64) {
		v := optimizer.Coord2(id)
		x := margin + (v.X-minX)/spanX*(imageWidth-2*margin)
		y := margin + (v.Y-minY)/spanY*(imageHeight-2*margin)
		return x, y
	}

	// Edges first so the node discs cover the line ends.
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		x1, y1 := pos(ids[e.From])
		x2, y2 := pos(ids[e.To])
		dc.SetRGBA(0.25, 0.25, 0.25, 0.8)
		dc.SetLineWidth(1 + 2*clamp(e.Score, 0, 1))
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	for _, name := range names {
		x, y := pos(ids[name])
		dc.SetRGB(0.53, 0.81, 0.92) // sky blue
		dc.DrawCircle(x, y, nodeRadius)
		dc.Fill()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.SetLineWidth(1)
		dc.DrawCircle(x, y, nodeRadius)
		dc.Stroke()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(name, x, y, 0.5, 0.5)
	}

	return encodePNG(dc)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode network image: %w", err)
	}
	return buf.Bytes(), nil
}
