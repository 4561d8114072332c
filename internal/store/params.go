package store

import (
	"fmt"
	"sort"
	"strconv"
)

// PositionalArgs orders RunSQL parameters keyed "1", "2", ... into driver
// arguments. Keys must be consecutive from 1.
func PositionalArgs(params map[string]any) ([]any, error) {
	positions := make([]int, 0, len(params))
	for key := range params {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("parameter %q: keys must be positions starting at 1", key)
		}
		positions = append(positions, n)
	}
	sort.Ints(positions)

	args := make([]any, 0, len(positions))
	for i, n := range positions {
		if n != i+1 {
			return nil, fmt.Errorf("parameter %d is missing", i+1)
		}
		args = append(args, params[strconv.Itoa(n)])
	}
	return args, nil
}
