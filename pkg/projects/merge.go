package projects

// Merge combines a remote listing with the local fallback list.
//
// When remote is empty (the remote source was unavailable or returned
// nothing) the result is local, in local order. Otherwise the result is every
// remote project in remote order followed by each local project whose slug
// is not among the remote slugs, in local order. Remote wins on slug clashes.
func Merge(local, remote []Project) []Project {
	if len(remote) == 0 {
		return append([]Project(nil), local...)
	}

	merged := make([]Project, 0, len(remote)+len(local))
	seen := make(map[string]struct{}, len(remote))
	for _, p := range remote {
		merged = append(merged, p)
		seen[p.Slug] = struct{}{}
	}

	for _, p := range local {
		if _, exists := seen[p.Slug]; exists {
			continue
		}
		merged = append(merged, p)
	}

	return merged
}
