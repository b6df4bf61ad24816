// Package facefilter suppresses depth samples that do not belong to a roughly
// circular foreground object (a face at a known approximate size).
//
// Each frame goes through a fixed sequence:
//
//  1. PlacePoints bins every non-zero sample into a per-layer occupancy
//     histogram over a coarse segmentsCount×segmentsCount grid.
//  2. Every interior layer is convolved with the ring Mask; segments scoring
//     above the threshold record the deepest matching layer in the segment
//     filter, and the selection is then propagated once over the mask footprint.
//  3. FilterDepthData zeroes every sample deeper than its segment allows.
//
// The Mask depends only on geometry and is built once per HistogramTransform.
// All per-frame buffers are cleared before each frame.
package facefilter
