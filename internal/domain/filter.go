package domain

import (
	"sort"
	"strings"
)

// FilterAll is the wildcard value matching every team leader or group.
const FilterAll = "ALL"

// SummaryFilter narrows the overview to one team leader, one group and/or a
// free-text shop-name search. Empty fields behave like the ALL wildcard.
type SummaryFilter struct {
	TeamLeader string
	Group      string
	Search     string
}

func matchesChoice(value, choice string) bool {
	choice = strings.ToUpper(strings.TrimSpace(choice))
	return choice == "" || choice == FilterAll || strings.ToUpper(value) == choice
}

// FilterSummaries applies the filter as a conjunction: leader match, group
// match and case-insensitive substring match on the shop name.
func FilterSummaries(summaries []ShopSummary, f SummaryFilter) []ShopSummary {
	search := strings.ToUpper(strings.TrimSpace(f.Search))
	out := make([]ShopSummary, 0, len(summaries))
	for _, s := range summaries {
		if !matchesChoice(s.TeamLeader, f.TeamLeader) {
			continue
		}
		if !matchesChoice(s.GroupName, f.Group) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToUpper(s.ShopName), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// PaginateSummaries slices one 1-indexed page out of the filtered rows. A
// page beyond the end yields an empty slice, never an error.
func PaginateSummaries(rows []ShopSummary, page, pageSize int) []ShopSummary {
	if page < 1 || pageSize < 1 {
		return []ShopSummary{}
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []ShopSummary{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func placeholderValue(v string) bool {
	return v == "" || v == "#N/A" || v == "N/A"
}

// Leaders returns the sorted distinct team leaders across the summaries,
// excluding blanks and sheet lookup placeholders.
func Leaders(summaries []ShopSummary) []string {
	seen := make(map[string]struct{})
	for _, s := range summaries {
		v := strings.ToUpper(strings.TrimSpace(s.TeamLeader))
		if placeholderValue(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	return sortedKeys(seen)
}

// Groups returns the sorted distinct group names across the summaries,
// optionally narrowed to one team leader (or the ALL wildcard).
func Groups(summaries []ShopSummary, teamLeader string) []string {
	seen := make(map[string]struct{})
	for _, s := range summaries {
		if !matchesChoice(s.TeamLeader, teamLeader) {
			continue
		}
		v := strings.ToUpper(strings.TrimSpace(s.GroupName))
		if placeholderValue(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
