// Package render composites one frame at a time: an animated or live
// background, the bilingual subtitle scroll stack with token highlight chips,
// and the vocabulary card grid.
//
// RenderFrame is deterministic for a given frame description, so the live
// preview loop and the capture pipeline produce identical pixels from the
// same inputs.
package render
