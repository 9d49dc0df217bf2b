package entities

import (
	"fmt"
)

// UpdateStatus is the outcome of planning a single requirement.
type UpdateStatus string

const (
	StatusUpToDate        UpdateStatus = "up-to-date"
	StatusUpdateAvailable UpdateStatus = "update-available"
	StatusUnknown         UpdateStatus = "unknown"
	StatusSkipped         UpdateStatus = "skipped"
)

// UpdateResult is the planned outcome for one requirement.
type UpdateResult struct {
	Requirement Requirement
	Current     *Version // resolved current version, nil when unknown
	Latest      *Version // highest allowed update, nil when none
	Available   []string
	Status      UpdateStatus
	Reason      string
}

// HasUpdate reports whether the result carries a version to upgrade to.
func (r UpdateResult) HasUpdate() bool {
	return r.Status == StatusUpdateAvailable && r.Latest != nil
}

// PlanOptions controls how requirements are planned.
type PlanOptions struct {
	Target UpgradeLevel
	Filter PackageFilter
}

// PlanUpdates maps every requirement to exactly one result, preserving order.
// sets is keyed by package name; requirements without an entry are unknown.
func PlanUpdates(reqs []Requirement, sets map[string]VersionSet, opts PlanOptions) []UpdateResult {
	results := make([]UpdateResult, 0, len(reqs))
	for _, req := range reqs {
		if !opts.Filter.Matches(req.Name) {
			results = append(results, UpdateResult{Requirement: req, Status: StatusSkipped})
			continue
		}
		set, ok := sets[req.Name]
		if !ok {
			results = append(results, UpdateResult{
				Requirement: req,
				Status:      StatusUnknown,
				Reason:      "package was not queried",
			})
			continue
		}
		results = append(results, PlanUpdate(req, set, opts.Target))
	}
	return results
}

// PlanUpdate compares one requirement against its published versions.
func PlanUpdate(req Requirement, set VersionSet, target UpgradeLevel) UpdateResult {
	result := UpdateResult{Requirement: req}
	if set.Failed() {
		result.Status = StatusUnknown
		result.Reason = set.Err.Error()
		return result
	}

	result.Available = set.Versions(req.User, req.Channel)
	available := ParseVersions(result.Available)

	current, err := resolveCurrent(req, available)
	if err != nil {
		result.Status = StatusUnknown
		result.Reason = err.Error()
		return result
	}
	result.Current = &current

	if latest, found := FindUpdate(current, available, target); found {
		result.Latest = &latest
		result.Status = StatusUpdateAvailable
		return result
	}
	result.Status = StatusUpToDate
	return result
}

func resolveCurrent(req Requirement, available []Version) (Version, error) {
	if req.IsRange() {
		resolved, found, err := ResolveRange(req.Version, available)
		if err != nil {
			return Version{}, err
		}
		if !found {
			return Version{}, fmt.Errorf("no published version satisfies %s", req.Version)
		}
		return resolved, nil
	}
	current, err := ParseVersion(req.Version)
	if err != nil {
		return Version{}, err
	}
	return current, nil
}

// CountByStatus tallies results per status.
func CountByStatus(results []UpdateResult) map[UpdateStatus]int {
	counts := make(map[UpdateStatus]int, 4) //nolint:mnd // one slot per status
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
