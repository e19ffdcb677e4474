// Package music implements the tuning and scale model used by pitch
// computations: temperaments (tuning systems), key signatures, scales,
// and a mutable current-pitch cursor.
//
// Pitch names use a compact internal notation: lowercase letter names
// c..b with #, b, x, and bb accidentals, or generic note names n0, n1,
// ... for temperaments that do not fit letter notation. NormalizePitch
// converts user input (including Unicode accidental glyphs) into the
// internal notation; DisplayPitch converts back.
package music
