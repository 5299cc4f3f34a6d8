package sharding

import "fmt"

// ShardName formats the canonical shard file name for a split, e.g.
// "train-00002-of-00010".
func ShardName(split string, index, total int) string {
	return fmt.Sprintf("%s-%05d-of-%05d", split, index, total)
}
