package match

import (
	"sort"

	"github.com/zerox80/tresormatch/internal/core/model"
)

// Pair addresses an unordered item pair. It is always normalized so A < B,
// which makes quarantine lookups symmetric.
type Pair struct {
	A, B string
}

func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Group is one maximal cluster of transitively matching items, with the union
// of the reasons that contributed any edge inside it.
type Group struct {
	GroupID      int          `json:"group_id"`
	MatchReasons []string     `json:"match_reasons"`
	Items        []model.Item `json:"items"`
}

// Report is the result of one duplicate analysis pass.
type Report struct {
	AnalyzedCount int     `json:"analyzed_count"`
	Limit         int     `json:"limit"`
	PresetUsed    string  `json:"preset_used,omitempty"`
	Groups        []Group `json:"groups"`
}

// Run executes one full matching pass over the pre-sorted, limit-truncated
// candidate list and assembles the report. An empty candidate list or a pass
// that finds no clusters yields a zero-group report, not an error.
func Run(candidates []model.Item, opts Options, quarantined map[Pair]bool, presetUsed string) Report {
	groups := FindGroups(candidates, opts, quarantined)
	if groups == nil {
		groups = []Group{}
	}
	return Report{
		AnalyzedCount: len(candidates),
		Limit:         opts.Limit,
		PresetUsed:    presetUsed,
		Groups:        groups,
	}
}

// FindGroups compares every unordered candidate pair, drops quarantined pairs,
// and extracts the connected components of size >= 2 from the resulting match
// graph. The pairwise sweep is O(n²) over the candidate list; the configured
// limit exists to bound exactly that cost.
//
// Members are ordered by (normalized lowercase name, uuid). Groups are ordered
// by descending size, equal sizes by smallest member uuid, and numbered
// 1-based after ordering.
func FindGroups(candidates []model.Item, opts Options, quarantined map[Pair]bool) []Group {
	itemsByUUID := make(map[string]model.Item, len(candidates))
	for _, item := range candidates {
		itemsByUUID[item.UUID] = item
	}

	adj := make(map[string][]string)
	edgeReasons := make(map[Pair][]string)

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			pair := NewPair(a.UUID, b.UUID)
			if quarantined[pair] {
				continue
			}
			reasons := compare(a, b, opts)
			if len(reasons) == 0 {
				continue
			}
			adj[a.UUID] = append(adj[a.UUID], b.UUID)
			adj[b.UUID] = append(adj[b.UUID], a.UUID)
			edgeReasons[pair] = reasons
		}
	}

	visited := make(map[string]bool)
	var groups []Group

	for _, item := range candidates {
		if visited[item.UUID] || len(adj[item.UUID]) == 0 {
			continue
		}
		var members []string
		walk(item.UUID, adj, visited, &members)
		if len(members) < 2 {
			continue
		}
		groups = append(groups, buildGroup(members, itemsByUUID, adj, edgeReasons))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Items) != len(groups[j].Items) {
			return len(groups[i].Items) > len(groups[j].Items)
		}
		return minUUID(groups[i]) < minUUID(groups[j])
	})
	for i := range groups {
		groups[i].GroupID = i + 1
	}

	return groups
}

func walk(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			walk(v, adj, visited, component)
		}
	}
}

// buildGroup assembles one component. Reasons are aggregated over every edge
// inside the component, not just the edges the traversal happened to follow.
func buildGroup(members []string, itemsByUUID map[string]model.Item, adj map[string][]string, edgeReasons map[Pair][]string) Group {
	reasonSet := make(map[string]bool)
	for _, u := range members {
		for _, v := range adj[u] {
			if u < v {
				for _, reason := range edgeReasons[Pair{A: u, B: v}] {
					reasonSet[reason] = true
				}
			}
		}
	}
	reasons := make([]string, 0, len(reasonSet))
	for reason := range reasonSet {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	items := make([]model.Item, 0, len(members))
	for _, uuid := range members {
		items = append(items, itemsByUUID[uuid])
	}
	sort.Slice(items, func(i, j int) bool {
		ni, nj := normalizeText(items[i].Name), normalizeText(items[j].Name)
		if ni != nj {
			return ni < nj
		}
		return items[i].UUID < items[j].UUID
	})

	return Group{MatchReasons: reasons, Items: items}
}

func minUUID(g Group) string {
	min := g.Items[0].UUID
	for _, item := range g.Items[1:] {
		if item.UUID < min {
			min = item.UUID
		}
	}
	return min
}
