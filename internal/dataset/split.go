package dataset

import "math"

// Split names the two top-level dataset partitions.
const (
	SplitTrain      = "train"
	SplitValidation = "validation"
)

// Splits holds the train/validation division of a shuffled file list. Train
// is the leading slice, Validation the trailing slice; together they
// reconstruct the input in order.
type Splits struct {
	Train      []string
	Validation []string
}

// Split divides files by the validation fraction v (0 <= v < 1). Train
// receives the first floor(len*(1-v)) entries and Validation the remainder.
// Either slice may be empty; callers skip empty splits rather than producing
// empty shard files.
func Split(files []string, v float64) Splits {
	numTrain := int(math.Floor(float64(len(files)) * (1 - v)))
	return Splits{
		Train:      files[:numTrain],
		Validation: files[numTrain:],
	}
}
