// Package charts tallies books by genre and status and renders the tallies
// as PNG pie and bar charts.
package charts

import (
	"sort"

	"github.com/mrlokans/library-manager/internal/entities"
)

// Count is the number of books sharing one label.
type Count struct {
	Label string
	Count int
}

// Distribution is ordered by descending count. Labels with equal counts keep
// the order in which they were first seen.
type Distribution []Count

// Total returns the sum of all counts.
func (d Distribution) Total() int {
	total := 0
	for _, c := range d {
		total += c.Count
	}
	return total
}

// Tally counts occurrences of each value.
func Tally(values []string) Distribution {
	index := make(map[string]int, len(values))
	dist := make(Distribution, 0)

	for _, v := range values {
		if i, ok := index[v]; ok {
			dist[i].Count++
			continue
		}
		index[v] = len(dist)
		dist = append(dist, Count{Label: v, Count: 1})
	}

	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})
	return dist
}

func GenreDistribution(books []entities.Book) Distribution {
	genres := make([]string, len(books))
	for i, b := range books {
		genres[i] = b.Genre
	}
	return Tally(genres)
}

func StatusDistribution(books []entities.Book) Distribution {
	statuses := make([]string, len(books))
	for i, b := range books {
		statuses[i] = string(b.Status)
	}
	return Tally(statuses)
}
