package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

// ResolvePages expands a page specification like "1,3-5,7" into a sorted,
// deduplicated list of 1-based page numbers, validated against totalPages.
// An empty spec selects every page. Ranges are inclusive and split at the
// first '-' only, so a token with more than one hyphen ("1-2-3") fails range
// parsing and is rejected rather than guessed at.
func ResolvePages(spec string, totalPages int) ([]int, error) {
	if totalPages <= 0 {
		return nil, domain.ValidationError("document has no pages", nil)
	}

	if strings.TrimSpace(spec) == "" {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]struct{})

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)

		if strings.Contains(part, "-") {
			halves := strings.SplitN(part, "-", 2)
			a, errA := strconv.Atoi(strings.TrimSpace(halves[0]))
			b, errB := strconv.Atoi(strings.TrimSpace(halves[1]))
			if errA != nil || errB != nil {
				return nil, domain.InvalidPageRangeError(part)
			}
			if a < 1 || b < 1 || a > totalPages || b > totalPages || a > b {
				return nil, domain.InvalidPageRangeError(part)
			}
			for p := a; p <= b; p++ {
				seen[p] = struct{}{}
			}
			continue
		}

		p, err := strconv.Atoi(part)
		if err != nil || p < 1 || p > totalPages {
			return nil, domain.InvalidPageNumberError(part)
		}
		seen[p] = struct{}{}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	return pages, nil
}
