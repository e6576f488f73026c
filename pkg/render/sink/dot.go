package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// ToDOT describes the scene graph of w in Graphviz DOT format.
//
// Cameras, actors and lookup tables are nodes keyed by identity, so a
// camera shared between renderers appears once with an edge from each of
// them.
func ToDOT(w *compose.Window) string {
	g := &dotGraph{ids: map[any]string{}}
	var buf bytes.Buffer
	buf.WriteString("digraph viewgrid {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=doubleoctagon];\n", "window",
		fmt.Sprintf("%s\n%dx%d, %dx%d grid", w.Name, w.Width, w.Height, w.Grid.Rows, w.Grid.Cols))

	var edges []string
	for _, r := range w.Renderers {
		rid := fmt.Sprintf("r%d", r.Index)
		fmt.Fprintf(&buf, "  %q [%s];\n", rid, strings.Join(rendererAttrs(r), ", "))
		edges = append(edges, fmt.Sprintf("  %q -> %q;", "window", rid))

		if r.Camera != nil {
			id, fresh := g.id(r.Camera, "cam")
			if fresh {
				fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", id, cameraLabel(r.Camera))
			}
			edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];", rid, id))
		}
		for _, a := range r.Actors {
			id, fresh := g.id(a, "actor")
			if fresh {
				fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, shape=box3d];\n", id, actorLabel(a), a.Color.Clamped().Hex())
				if a.Lookup != nil {
					lid, lfresh := g.id(fmt.Sprintf("%p", a.Lookup), "lut")
					if lfresh {
						lo, hi := a.Lookup.Range()
						fmt.Fprintf(&buf, "  %q [label=%q, shape=cylinder];\n", lid, fmt.Sprintf("lookup\n[%.3g, %.3g]", lo, hi))
					}
					edges = append(edges, fmt.Sprintf("  %q -> %q;", id, lid))
				}
			}
			edges = append(edges, fmt.Sprintf("  %q -> %q;", rid, id))
		}
		for i, wd := range r.Widgets {
			wid := fmt.Sprintf("%s.w%d", rid, i)
			fmt.Fprintf(&buf, "  %q [label=%q, shape=note, fillcolor=lightyellow];\n", wid, widgetLabel(wd))
			edges = append(edges, fmt.Sprintf("  %q -> %q;", rid, wid))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.String()
}

type dotGraph struct {
	ids map[any]string
	n   int
}

// id returns the node id of v and whether it was assigned by this call.
func (g *dotGraph) id(v any, prefix string) (string, bool) {
	if id, ok := g.ids[v]; ok {
		return id, false
	}
	id := fmt.Sprintf("%s%d", prefix, g.n)
	g.n++
	g.ids[v] = id
	return id, true
}

func rendererAttrs(r *compose.Renderer) []string {
	label := fmt.Sprintf("renderer %d (%d,%d)\n%v", r.Index, r.Row, r.Col, r.Viewport)
	if r.Title != "" {
		label = r.Title + "\n" + label
	}
	borders := make([]string, 0, len(r.Overlays))
	for _, b := range r.Overlays {
		borders = append(borders, b.Style.String())
	}
	if len(borders) > 0 {
		label += "\nborder " + strings.Join(borders, ",")
	}
	bg := r.Background.Clamped()
	font := "black"
	if _, _, l := bg.Hsl(); l < 0.5 {
		font = "white"
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", bg.Hex()),
		fmt.Sprintf("fontcolor=%s", font),
	}
	if r.Filler {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

func cameraLabel(c *scene.Camera) string {
	rec := c.Record
	return fmt.Sprintf("camera\naz %.4g el %.4g\nzoom %.4g dolly %.4g", rec.Azimuth, rec.Elevation, rec.Zoom, rec.Dolly)
}

func actorLabel(a *scene.Actor) string {
	tris := 0
	if a.Mesh != nil {
		tris = len(a.Mesh.Triangles)
	}
	label := fmt.Sprintf("%s\n%d triangles", a.Name, tris)
	if a.Opacity < 1 {
		label += fmt.Sprintf("\nopacity %.2f", a.Opacity)
	}
	return label
}

func widgetLabel(wd compose.Widget) string {
	switch v := wd.(type) {
	case *compose.TextWidget:
		return "text: " + v.Text
	case *compose.MarkerWidget:
		return "marker: " + v.Marker.Kind.String()
	case *compose.ScalarBarWidget:
		return "scalar bar: " + v.Bar.Title
	case *compose.Slider:
		return fmt.Sprintf("slider: %s = %.3g", v.Title, v.Value())
	}
	return fmt.Sprintf("%T", wd)
}

// RenderDOTSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
