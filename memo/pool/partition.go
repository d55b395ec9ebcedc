package pool

import (
	"github.com/cespare/xxhash/v2"
)

func indexOf(key string, numWorkers int) int {
	switch numWorkers {
	case 0:
		panic("number of workers cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numWorkers))
	}
}
