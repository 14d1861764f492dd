package event

import "strings"

// Search keeps the events whose title, description or category contains term,
// ignoring case. An empty term keeps everything.
func Search(events []Event, term string) []Event {
	needle := strings.ToLower(term)
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strings.Contains(strings.ToLower(e.Category), needle) {
			result = append(result, e.Clone())
		}
	}
	return result
}

// FilterByCategory keeps the events whose category equals category exactly.
// An empty category keeps everything.
func FilterByCategory(events []Event, category string) []Event {
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if category == "" || e.Category == category {
			result = append(result, e.Clone())
		}
	}
	return result
}

// Categories lists the distinct non-empty categories in the order they first appear.
func Categories(events []Event) []string {
	seen := make(map[string]struct{}, len(events))
	categories := make([]string, 0)
	for _, e := range events {
		if e.Category == "" {
			continue
		}
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories
}
