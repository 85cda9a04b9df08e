// Package adjust compiles tone and color adjustment knobs into an ordered
// chain of image filter stages and rasterizes that chain.
//
// Compile is a pure function: the same knobs always yield the same chain.
// The stage order is fixed and every knob at its neutral value contributes
// no stage at all, so an untouched image runs through an empty chain.
//
// Knob values are not validated. Tone knobs are expected in [-100, 100]
// (sepia in [0, 100]) and Color.Hue in degrees; values outside those
// ranges produce proportionally stronger stages.
package adjust
