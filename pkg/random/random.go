package random

import (
	"math/rand"
	"sort"
	"time"

	"github.com/username/datepicker/pkg/dateutil"
)

// SelectRandomItems selects n random items from slice
// Returns indices of selected items
func SelectRandomItems(totalCount, n int) []int {
	if n <= 0 || totalCount <= 0 {
		return []int{}
	}

	// Create slice of all indices
	allIndices := make([]int, totalCount)
	for i := range allIndices {
		allIndices[i] = i
	}

	if n >= totalCount {
		return allIndices
	}

	// Shuffle using Fisher-Yates algorithm
	for i := len(allIndices) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		allIndices[i], allIndices[j] = allIndices[j], allIndices[i]
	}

	// Return first n indices
	return allIndices[:n]
}

// SelectRandomDaysOfMonth picks n distinct days from the month containing date,
// returned in calendar order. weekdaysOnly restricts the pool to Monday-Friday.
func SelectRandomDaysOfMonth(date time.Time, n int, weekdaysOnly bool) []time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())

	pool := make([]time.Time, 0, 31)
	for day := 0; day < dateutil.DaysInMonth(date.Year(), date.Month()); day++ {
		d := first.AddDate(0, 0, day)
		if weekdaysOnly && !dateutil.IsWeekday(d) {
			continue
		}
		pool = append(pool, d)
	}

	indices := SelectRandomItems(len(pool), n)
	sort.Ints(indices)

	dates := make([]time.Time, len(indices))
	for i, idx := range indices {
		dates[i] = pool[idx]
	}
	return dates
}
