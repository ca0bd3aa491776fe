package utils

import "math"

// CreateRankList creates 1-based ranks for an already sorted result list.
// Ranks saturate at the uint16 maximum.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(min(i+1, math.MaxUint16))
	}
	return ranks
}
