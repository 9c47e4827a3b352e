package countries

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxFuzzyDistance caps SuggestByName edit distances; beyond three edits
// short names like "Oman" or "Peru" match almost anything.
const maxFuzzyDistance = 3

// SuggestByName returns countries whose name is within maxDist edits of
// name, ignoring case, closest first. maxDist <= 0 means 1 and values above
// 3 are capped. Zero matches is still a success.
func (p *Provider) SuggestByName(name string, maxDist int) Result {
	if isBlank(name) {
		return emptyInput("name")
	}
	if maxDist <= 0 {
		maxDist = 1
	}
	if maxDist > maxFuzzyDistance {
		maxDist = maxFuzzyDistance
	}

	countries, err := p.all()
	if err != nil {
		return loadFailure(err)
	}

	query := toLower(name)
	type suggestion struct {
		pos  int
		dist int
	}
	var suggestions []suggestion
	for pos, c := range countries {
		dist := levenshtein.ComputeDistance(query, toLower(c.Name))
		if dist <= maxDist {
			suggestions = append(suggestions, suggestion{pos: pos, dist: dist})
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].dist < suggestions[j].dist
	})

	positions := make([]int, len(suggestions))
	for i, s := range suggestions {
		positions[i] = s.pos
	}
	return ok(pick(countries, positions))
}
