package service

import (
	idmodels "callerid/internal/identity/models"
)

// mergeTiers appends strong matches, then weak matches whose phone has not
// been seen. The first occurrence of a phone wins, so tier 1 always beats
// tier 2 and order within each tier is kept.
func mergeTiers(strong, weak []*idmodels.User) []*idmodels.User {
	merged := make([]*idmodels.User, 0, len(strong)+len(weak))
	seen := make(map[string]struct{}, len(strong)+len(weak))
	for _, tier := range [][]*idmodels.User{strong, weak} {
		for _, u := range tier {
			if _, dup := seen[u.Phone]; dup {
				continue
			}
			seen[u.Phone] = struct{}{}
			merged = append(merged, u)
		}
	}
	return merged
}
