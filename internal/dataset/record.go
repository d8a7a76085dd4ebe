package dataset

import (
	"strings"

	"courtlinks/lib/textutil"
)

// Columns is the header of the persisted dataset, in order.
var Columns = [...]string{
	"supreme_case_number",
	"supreme_case_link",
	"appeals_case_number",
	"appeals_case_link",
	"source_type",
	"verdict_date",
	"decision_status",
}

// SourceType tags which page family a record was harvested from.
type SourceType string

const (
	SourceVerdict  SourceType = "verdict"
	SourceDecision SourceType = "decision"
)

// ParseSourceType accepts the current tags as well as the Icelandic tags
// ("dóm", "ákvörðun") written by older versions of the dataset.
func ParseSourceType(s string) SourceType {
	switch textutil.Fold(strings.TrimSpace(s)) {
	case "verdict", "dóm", "dómur":
		return SourceVerdict
	case "decision", "ákvörðun":
		return SourceDecision
	}
	return SourceType(strings.TrimSpace(s))
}

// Label is the Icelandic word the court uses for the page family.
func (s SourceType) Label() string {
	switch s {
	case SourceVerdict:
		return "dóm"
	case SourceDecision:
		return "ákvörðun"
	}
	return string(s)
}

// DecisionStatus is the outcome of a decision page.
type DecisionStatus string

const (
	StatusNone     DecisionStatus = ""
	StatusApproved DecisionStatus = "approved"
	StatusRejected DecisionStatus = "rejected"
)

// ParseDecisionStatus accepts the current values as well as the Icelandic
// words ("Samþykkt", "Hafnað") written by older versions of the dataset.
func ParseDecisionStatus(s string) DecisionStatus {
	switch textutil.Fold(strings.TrimSpace(s)) {
	case "":
		return StatusNone
	case "approved", "samþykkt":
		return StatusApproved
	case "rejected", "hafnað":
		return StatusRejected
	}
	return DecisionStatus(strings.TrimSpace(s))
}

func (s DecisionStatus) Label() string {
	switch s {
	case StatusApproved:
		return "Samþykkt"
	case StatusRejected:
		return "Hafnað"
	}
	return string(s)
}

// CaseRecord is one harvested supreme court page.
type CaseRecord struct {
	// SupremeCaseNumber is the dedup key, empty means the page was not recognized.
	SupremeCaseNumber string
	SupremeCaseLink   string
	// AppealsCaseNumber is the grouping key of the index, empty means no
	// appeals court case was linked.
	AppealsCaseNumber string
	AppealsCaseLink   string
	SourceType        SourceType
	VerdictDate       string
	// DecisionStatus is only ever set on decision records.
	DecisionStatus DecisionStatus
}

// Valid is true when the page yielded a case number.
func (r CaseRecord) Valid() bool {
	return strings.TrimSpace(r.SupremeCaseNumber) != ""
}

// CrossReferenced is true when the record links to an appeals court case.
func (r CaseRecord) CrossReferenced() bool {
	return strings.TrimSpace(r.AppealsCaseNumber) != ""
}

// Row returns the record's values in Columns order.
func (r CaseRecord) Row() []string {
	return []string{
		r.SupremeCaseNumber,
		r.SupremeCaseLink,
		r.AppealsCaseNumber,
		r.AppealsCaseLink,
		string(r.SourceType),
		r.VerdictDate,
		string(r.DecisionStatus),
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (r CaseRecord) Trimmed() CaseRecord {
	return CaseRecord{
		SupremeCaseNumber: strings.TrimSpace(r.SupremeCaseNumber),
		SupremeCaseLink:   strings.TrimSpace(r.SupremeCaseLink),
		AppealsCaseNumber: strings.TrimSpace(r.AppealsCaseNumber),
		AppealsCaseLink:   strings.TrimSpace(r.AppealsCaseLink),
		SourceType:        SourceType(strings.TrimSpace(string(r.SourceType))),
		VerdictDate:       strings.TrimSpace(r.VerdictDate),
		DecisionStatus:    DecisionStatus(strings.TrimSpace(string(r.DecisionStatus))),
	}
}

// recordFromColumns builds a record by looking each column up by name,
// columns that the source does not have come back as "".
func recordFromColumns(get func(column string) string) CaseRecord {
	record := CaseRecord{
		SupremeCaseNumber: get("supreme_case_number"),
		SupremeCaseLink:   get("supreme_case_link"),
		AppealsCaseNumber: get("appeals_case_number"),
		AppealsCaseLink:   get("appeals_case_link"),
		SourceType:        ParseSourceType(get("source_type")),
		VerdictDate:       get("verdict_date"),
		DecisionStatus:    ParseDecisionStatus(get("decision_status")),
	}
	if record.SourceType == SourceVerdict {
		record.DecisionStatus = StatusNone
	}
	return record
}
