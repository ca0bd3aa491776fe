package suggest

// FirstIndexOf returns the smallest index i for which cmp(a[i], key) == 0,
// or -1 when no element is equivalent to key. a must be sorted consistently
// with cmp; the result is unspecified otherwise.
//
// cmp is called at most 1+log2(len(a)) times.
func FirstIndexOf[T any](a []T, key T, cmp func(x, y T) int) int {
	// invariant: a[low] < key <= a[high], with low and high as virtual sentinels
	low, high := -1, len(a)
	for high-low > 1 {
		mid := int(uint(low+high) >> 1)
		if cmp(a[mid], key) < 0 {
			low = mid
		} else {
			high = mid
		}
	}
	if high < len(a) && cmp(a[high], key) == 0 {
		return high
	}
	return -1
}

// LastIndexOf returns the largest index i for which cmp(a[i], key) == 0,
// or -1 when no element is equivalent to key. The same preconditions and
// bounds as FirstIndexOf apply.
func LastIndexOf[T any](a []T, key T, cmp func(x, y T) int) int {
	// invariant: a[low] <= key < a[high]
	low, high := -1, len(a)
	for high-low > 1 {
		mid := int(uint(low+high) >> 1)
		if cmp(a[mid], key) <= 0 {
			low = mid
		} else {
			high = mid
		}
	}
	if low >= 0 && cmp(a[low], key) == 0 {
		return low
	}
	return -1
}
