package entities

// PublishedReference is one search hit for a package.
type PublishedReference struct {
	Version string
	User    string
	Channel string
}

// VersionSet holds what a package index published for one package name.
// Err is set when the query failed; References is then empty.
type VersionSet struct {
	Name       string
	References []PublishedReference
	Err        error
}

// Failed reports whether the lookup for this package failed.
func (s VersionSet) Failed() bool {
	return s.Err != nil
}

// Versions returns the published version strings for the given user/channel,
// in the order they were reported and without duplicates.
func (s VersionSet) Versions(user, channel string) []string {
	seen := make(map[string]struct{}, len(s.References))
	versions := make([]string, 0, len(s.References))
	for _, ref := range s.References {
		if ref.User != user || ref.Channel != channel {
			continue
		}
		if _, ok := seen[ref.Version]; ok {
			continue
		}
		seen[ref.Version] = struct{}{}
		versions = append(versions, ref.Version)
	}
	return versions
}
