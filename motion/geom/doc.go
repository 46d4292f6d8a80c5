// Package geom holds the small geometry values the drag controller works with:
// the 2D affine matrix of a transform style, rectangles and points.
package geom
