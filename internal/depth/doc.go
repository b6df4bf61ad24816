// Package depth holds the depth buffer view shared by every filter strategy.
//
// A Frame is a row-major width×height grid of uint16 samples where 0 means the
// sensor saw no return. Strategies implement Transform and mutate the frame in
// place; Pipeline and FixedSizeTransform compose them.
package depth
