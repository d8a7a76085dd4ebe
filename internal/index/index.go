package index

import (
	"sort"

	"courtlinks/internal/dataset"
)

// Record is a dataset row without its appeals case number, which is
// redundant with the key it is stored under.
type Record struct {
	SupremeCaseNumber string                 `json:"supreme_case_number"`
	SupremeCaseLink   string                 `json:"supreme_case_link"`
	AppealsCaseLink   string                 `json:"appeals_case_link"`
	SourceType        dataset.SourceType     `json:"source_type"`
	VerdictDate       string                 `json:"verdict_date"`
	DecisionStatus    dataset.DecisionStatus `json:"decision_status"`
}

func recordOf(r dataset.CaseRecord) Record {
	return Record{
		SupremeCaseNumber: r.SupremeCaseNumber,
		SupremeCaseLink:   r.SupremeCaseLink,
		AppealsCaseLink:   r.AppealsCaseLink,
		SourceType:        r.SourceType,
		VerdictDate:       r.VerdictDate,
		DecisionStatus:    r.DecisionStatus,
	}
}

// CaseRecord restores the full dataset row given the key the record was stored under.
func (r Record) CaseRecord(appealsCaseNumber string) dataset.CaseRecord {
	return dataset.CaseRecord{
		SupremeCaseNumber: r.SupremeCaseNumber,
		SupremeCaseLink:   r.SupremeCaseLink,
		AppealsCaseNumber: appealsCaseNumber,
		AppealsCaseLink:   r.AppealsCaseLink,
		SourceType:        r.SourceType,
		VerdictDate:       r.VerdictDate,
		DecisionStatus:    r.DecisionStatus,
	}
}

// Entry is every supreme court record that references one appeals case, in
// dataset order. It is serialized as a bare object when it holds exactly one
// record and as an array otherwise.
type Entry []Record

// FirstAppealsLink returns the first non-empty appeals case link of the entry.
func (e Entry) FirstAppealsLink() string {
	for _, r := range e {
		if r.AppealsCaseLink != "" {
			return r.AppealsCaseLink
		}
	}
	return ""
}

// Index maps appeals case numbers to the supreme court records referencing them.
type Index map[string]Entry

// Build regroups a dataset by appeals case number. Values are trimmed and
// rows without an appeals case number are left out. The index is always
// rebuilt from scratch.
func Build(records []dataset.CaseRecord) Index {
	idx := Index{}
	for _, r := range records {
		r = r.Trimmed()
		if r.AppealsCaseNumber == "" {
			continue
		}
		idx[r.AppealsCaseNumber] = append(idx[r.AppealsCaseNumber], recordOf(r))
	}
	return idx
}

// Keys returns the appeals case numbers of the index, sorted.
func (idx Index) Keys() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LinkCount is the number of supreme court records across every entry.
func (idx Index) LinkCount() int {
	n := 0
	for _, e := range idx {
		n += len(e)
	}
	return n
}
