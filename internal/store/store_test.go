package store

import (
	"context"
	"path/filepath"
	"testing"

	"courtlinks/internal/dataset"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func records() []dataset.CaseRecord {
	return []dataset.CaseRecord{
		{
			SupremeCaseNumber: "5/2025",
			SupremeCaseLink:   "https://www.haestirettur.is/domar/_domur/?id=1",
			AppealsCaseNumber: "12/2024",
			AppealsCaseLink:   "https://landsrettur.is/domar-og-urskurdir/domur-urskurdur/?id=a",
			SourceType:        dataset.SourceVerdict,
			VerdictDate:       "15. maí 2025",
		},
		{
			SupremeCaseNumber: "2025-106",
			SupremeCaseLink:   "https://www.haestirettur.is/akvardanir/2025-106",
			AppealsCaseNumber: "3/2023",
			SourceType:        dataset.SourceDecision,
			DecisionStatus:    dataset.StatusApproved,
		},
		{
			SupremeCaseNumber: "1/2025",
			SupremeCaseLink:   "https://www.haestirettur.is/domar/_domur/?id=2",
			AppealsCaseNumber: "12/2024",
			SourceType:        dataset.SourceVerdict,
		},
	}
}

func TestReplaceAndQuery(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Replace(ctx, records()))

	all, err := store.All(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(records(), all); diff != "" {
		t.Fatal(diff)
	}

	matches, err := store.ByAppealsNumber(ctx, "12/2024")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "5/2025", matches[0].SupremeCaseNumber)
	require.Equal(t, "1/2025", matches[1].SupremeCaseNumber)

	none, err := store.ByAppealsNumber(ctx, "99/2024")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "cases.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Replace(ctx, records()))
	require.NoError(t, store.Replace(ctx, records()[:1]))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "5/2025", all[0].SupremeCaseNumber)
}
