package aliasgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/render"
)

// Options configures the diagram.
type Options struct {
	// Hidden includes hidden names.
	Hidden bool
	// Names restricts the diagram to the clusters containing these names,
	// plus the clusters their aliases point at. Empty means all.
	Names []string
}

// ToDOT converts the alias graph of set to Graphviz DOT source.
func ToDOT(set *iconset.IconSet, opts Options) string {
	idx := set.Icons
	keep := selectClusters(idx, opts.Names)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", set.ID.String())
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	var edges []*iconset.Icon
	for _, u := range idx.Unique {
		if !keep(u) || (u.Hidden && !opts.Hidden) {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", u.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(u))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, icon := range u.Icons {
			if icon.Hidden && !opts.Hidden {
				continue
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", icon.Name, strings.Join(nodeAttrs(u, icon), ", "))
			if icon.Parent != "" {
				edges = append(edges, icon)
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, icon := range edges {
		if parent, ok := idx.IconsMap[icon.Parent]; ok && parent.Hidden && !opts.Hidden {
			continue
		}
		if pu := idx.UniqueMap[icon.Parent]; pu != nil && !keep(pu) {
			continue
		}
		attrs := ""
		if t := relative(idx, icon); !t.IsZero() {
			attrs = fmt.Sprintf(" [label=%q, style=dashed]", transformLabel(t))
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", icon.Name, icon.Parent, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// selectClusters returns a predicate over clusters honoring names.
func selectClusters(idx *iconset.Index, names []string) func(*iconset.UniqueIcon) bool {
	if len(names) == 0 {
		return func(*iconset.UniqueIcon) bool { return true }
	}
	keep := make(map[int]bool)
	var mark func(u *iconset.UniqueIcon)
	mark = func(u *iconset.UniqueIcon) {
		if keep[u.Index] {
			return
		}
		keep[u.Index] = true
		for _, icon := range u.Icons {
			if pu, ok := idx.UniqueMap[icon.Parent]; ok {
				mark(pu)
			}
		}
	}
	for _, name := range names {
		if u, ok := idx.UniqueMap[name]; ok {
			mark(u)
		}
	}
	return func(u *iconset.UniqueIcon) bool { return keep[u.Index] }
}

// relative returns the transform an alias adds on top of its parent.
func relative(idx *iconset.Index, icon *iconset.Icon) iconset.Transform {
	parent, ok := idx.IconsMap[icon.Parent]
	if !ok {
		return icon.Transform
	}
	p := parent.Transform
	return iconset.NewTransform(-p.Rotate, p.HFlip, p.VFlip).Compose(icon.Transform)
}

func clusterLabel(u *iconset.UniqueIcon) string {
	label := "#" + strconv.Itoa(u.Index) + " renders " + u.Render
	if !u.Transform.IsZero() {
		label += " (" + transformLabel(u.Transform) + ")"
	}
	return label
}

func nodeAttrs(u *iconset.UniqueIcon, icon *iconset.Icon) []string {
	var attrs []string
	switch {
	case icon.Hidden:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	case icon.Parent == "":
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	if icon.Name == u.Name() {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func transformLabel(t iconset.Transform) string {
	var parts []string
	if t.Rotate != 0 {
		parts = append(parts, strconv.Itoa(t.Rotate*90)+"deg")
	}
	if t.HFlip {
		parts = append(parts, "hflip")
	}
	if t.VFlip {
		parts = append(parts, "vflip")
	}
	return strings.Join(parts, " ")
}

// RenderSVG renders DOT source to SVG in process.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, whose size is in
// points, with one sized by the view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// Render renders DOT source in format: "dot", "svg", "pdf" or "png".
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case "dot", "":
		return []byte(dot), nil
	case "svg":
		return RenderSVG(ctx, dot)
	case "pdf", "png":
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		if format == "pdf" {
			return render.ToPDF(svg)
		}
		return render.ToPNG(svg, 2)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q", format)
}
