package stats

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SuggestUser finds the user most likely meant by name when name itself
// never rolled. It returns false when name is present or nothing is close.
func (t *Table) SuggestUser(name string) (string, bool) {
	if name == "" || t.HasUser(name) {
		return "", false
	}

	users := t.AllUsers()
	for _, u := range users {
		if strings.EqualFold(u, name) {
			return u, true
		}
	}

	matches := fuzzy.Find(name, users)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
