// Package pkg provides the core libraries for Mosaic treemap visualization.
//
// # Overview
//
// Mosaic turns weighted, hierarchical tabular data into squarified treemap
// visualizations with automatically fitted labels. The pkg directory is
// organized into four main areas:
//
//  1. Domain logic - layout and text fitting ([squarify], [treemap], [textfit], [geom])
//  2. Input - tabular data loading ([dataset])
//  3. Output - SVG, raster, and node-link rendering ([render])
//  4. Orchestration - the cached load → layout → render pipeline ([pipeline], [cache])
//
// # Architecture
//
// The typical data flow through Mosaic:
//
//	CSV file or inline data
//	         ↓
//	dataset: parse rows, select weight/label/fill/hierarchy columns
//	         ↓
//	treemap: aggregate rows into a hierarchy, squarify each level
//	         ↓
//	render: draw tiles, fit labels with textfit, emit SVG/PNG/PDF/JSON
//
// The [pipeline] package wires these stages together behind a Runner that
// caches every stage by content hash, so repeated renders of the same data
// and configuration are served from the [cache] backends (file or Redis).
//
// Cross-cutting concerns live in [errors] (structured error codes) and
// [observability] (pluggable stage and cache hooks).
package pkg
