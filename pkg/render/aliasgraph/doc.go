// Package aliasgraph renders the alias structure of an icon set as a
// Graphviz diagram.
//
// Every name of the set becomes a node and every alias an edge to its
// parent. Names that share a body and transform are grouped in one
// cluster, so the diagram shows how the converter collapsed the set into
// unique icons. Transformed aliases have their edge labelled with the
// rotation and flips they add.
//
//	dot := aliasgraph.ToDOT(set, aliasgraph.Options{})
//	svg, err := aliasgraph.RenderSVG(ctx, dot)
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG], which
// need rsvg-convert from librsvg.
//
// This is a debugging aid; large sets produce very large diagrams, so
// [Options.Names] can restrict the output to the clusters of a few names.
package aliasgraph
