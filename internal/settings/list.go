// Package settings persists the panel's small collections: comma-delimited
// configuration lists and JSON path lists in a keyed string store.
package settings

import "strings"

const listSeparator = ", "

// ParseDelimitedList splits raw on commas, trims every token and drops
// blanks. Duplicate tokens collapse onto their first occurrence, so the
// result is an ordered set.
func ParseDelimitedList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// SerializeList joins the non-blank trimmed items with ", ". A single item
// is returned as is and an empty list yields "".
func SerializeList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, listSeparator)
}
