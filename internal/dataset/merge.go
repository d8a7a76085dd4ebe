package dataset

// MergeStats describes the outcome of a Merge.
type MergeStats struct {
	// Total is the number of rows in the merged dataset.
	Total int
	// Added is the number of incoming rows that made it into the dataset.
	Added int
	// Skipped counts incoming rows dropped for having no appeals case number.
	Skipped int
	// Duplicates counts incoming rows dropped because their case number was already present.
	Duplicates int
}

// Merge appends incoming records to existing ones. Incoming records without an
// appeals case number are dropped, and for each supreme case number only the
// first row is kept, so rows already in the dataset always win over freshly
// scraped ones. Existing rows are kept in their original order.
func Merge(existing, incoming []CaseRecord) ([]CaseRecord, MergeStats) {
	var stats MergeStats

	merged := make([]CaseRecord, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, r := range existing {
		if _, dup := seen[r.SupremeCaseNumber]; dup {
			continue
		}
		seen[r.SupremeCaseNumber] = struct{}{}
		merged = append(merged, r)
	}

	for _, r := range incoming {
		if !r.CrossReferenced() {
			stats.Skipped++
			continue
		}
		if _, dup := seen[r.SupremeCaseNumber]; dup {
			stats.Duplicates++
			continue
		}
		seen[r.SupremeCaseNumber] = struct{}{}
		merged = append(merged, r)
		stats.Added++
	}

	stats.Total = len(merged)
	return merged, stats
}
