// Package bezier evaluates and tessellates tensor-product Bezier surface patches.
//
// A Surface wraps a grid of (DegreeU+1) x (DegreeV+1) control points. Surfaces are
// evaluated with repeated de Casteljau reduction: each control row is reduced at u,
// and the resulting column is reduced at 1-v. Row 0 of the grid is the v=1 edge.
// Normals are the normalized cross product of the u and v tangents.
//
// Sampling walks (u, v) over [0,1]x[0,1] at DegreeU*coarseness by DegreeV*coarseness
// points, and Triangulate turns the sample grids into a flat triangle soup ready for
// upload to a vertex buffer.
//
// Everything in this package is a pure function of its inputs. Nothing here logs,
// allocates per evaluation, or holds global state.
package bezier
