// Package dataset handles input file discovery and the deterministic
// shuffle/split that precedes shard writing.
//
// Discovery collects files by extension, the shuffle applies a fixed-seed
// permutation so repeated runs order records identically, and the split
// carves the shuffled list into a leading train slice and a trailing
// validation slice.
package dataset
