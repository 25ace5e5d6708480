package periods

// DateWithin reports whether date falls inside [start, end] inclusive.
// ISO-8601 dates are fixed width, so lexicographic comparison is exact.
func DateWithin(start, end, date string) bool {
	return date >= start && date <= end
}

// AnyContains reports whether any lock in the set covers the date.
func AnyContains(locks []PeriodLock, date string) bool {
	for _, lock := range locks {
		if DateWithin(lock.PeriodStart, lock.PeriodEnd, date) {
			return true
		}
	}
	return false
}
