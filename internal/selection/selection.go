// Package selection turns the index tokens typed in the interactive
// recycle-bin session ("3", "2-5", "1,4,7") into snapshot indices.
package selection

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Parse converts token into ascending, deduplicated, zero-based indices that
// are all below count. Tokens are 1-based. Parts that do not parse or fall
// outside [1, count] are dropped, so malformed input yields an empty slice
// rather than an error.
//
//	"1,3,5" -> comma list, each part trimmed
//	"2-5"   -> inclusive range, split on the first '-', never swapped
//	"4"     -> single number
func Parse(token string, count int) []int {
	var picked []int

	switch {
	case strings.Contains(token, ","):
		for _, part := range strings.Split(token, ",") {
			if n, ok := number(part, count); ok {
				picked = append(picked, n-1)
			}
		}

	case strings.Contains(token, "-"):
		first, last, _ := strings.Cut(token, "-")
		start, err1 := strconv.ParseUint(strings.TrimSpace(first), 10, 0)
		end, err2 := strconv.ParseUint(strings.TrimSpace(last), 10, 0)
		if err1 != nil || err2 != nil {
			return []int{}
		}
		for i := start; i <= end && i <= uint64(max(count, 0)); i++ {
			if i >= 1 {
				picked = append(picked, int(i)-1)
			}
		}

	default:
		if n, ok := number(token, count); ok {
			picked = append(picked, n-1)
		}
	}

	picked = lo.Uniq(picked)
	slices.Sort(picked)
	if picked == nil {
		return []int{}
	}
	return picked
}

func number(s string, count int) (int, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil || n < 1 || n > uint64(max(count, 0)) {
		return 0, false
	}
	return int(n), true
}
