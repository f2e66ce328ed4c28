package search

import (
	"sort"

	"github.com/talent-cloud/resumedex/internal/domain/candidate"
)

// Finalize collapses the scored pool into the caller-facing result set:
// one match per candidate ID (best score wins, lower variant index breaks
// ties), ordered by score descending then file name ascending, truncated
// to topK.
func Finalize(scored []candidate.Match, topK int) []candidate.Match {
	best := make(map[string]candidate.Match, len(scored))
	for _, m := range scored {
		prev, ok := best[m.ID]
		if !ok || better(m, prev) {
			best[m.ID] = m
		}
	}

	out := make([]candidate.Match, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalScore != out[j].FinalScore {
			return out[i].FinalScore > out[j].FinalScore
		}
		return out[i].FileName < out[j].FileName
	})

	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// better reports whether a should replace b as the kept match for an ID.
func better(a, b candidate.Match) bool {
	if a.FinalScore != b.FinalScore {
		return a.FinalScore > b.FinalScore
	}
	return a.Variant < b.Variant
}
