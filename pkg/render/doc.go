// Package render converts SVG output to other formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg). They are shared
// by the diagram renderers in the subpackages:
//
//	svg, err := aliasgraph.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [aliasgraph] draws the alias structure of an icon set.
//
// [aliasgraph]: github.com/matzehuels/iconfinder/pkg/render/aliasgraph
package render
