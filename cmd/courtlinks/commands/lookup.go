package commands

import (
	"fmt"
	"io"
	"strings"

	"courtlinks/internal/dataset"
	"courtlinks/internal/index"
	"courtlinks/internal/store"
	"courtlinks/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const suggestionCount = 3

var lookupSqlite bool

func init() {
	lookupCmd.Flags().BoolVar(&lookupSqlite, "sqlite", false, "Query the sqlite mirror instead of the index file.")
	rootCmd.AddCommand(lookupCmd)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// renderEntry prints every supreme court record referencing an appeals case.
func renderEntry(w io.Writer, key string, entry index.Entry) {
	heading := key
	if link := entry.FirstAppealsLink(); link != "" {
		heading = fmt.Sprintf("%s (%s)", key, link)
	}
	fmt.Fprintf(w, "Landsréttarmál %s hefur verið til umfjöllunar í Hæstarétti:\n", heading)

	t := newTable(w)
	t.AppendHeader(table.Row{"Dagsetning", "Mál nr.", "Tegund", "Niðurstaða", "Hlekkur"})
	for _, r := range entry {
		status := ""
		if r.SourceType == dataset.SourceDecision {
			status = r.DecisionStatus.Label()
		}
		t.AppendRow(table.Row{
			r.VerdictDate,
			r.SupremeCaseNumber,
			r.SourceType.Label(),
			status,
			r.SupremeCaseLink,
		})
	}
	t.Render()
}

func renderMissing(w io.Writer, key string, suggestions []string) {
	fmt.Fprintf(w, "Ekkert mál hjá Hæstarétti fannst fyrir %s.\n", key)
	if len(suggestions) > 0 {
		fmt.Fprintf(w, "Áttirðu við: %s?\n", strings.Join(suggestions, ", "))
	}
}

func lookupIndex(w io.Writer, idx index.Index, keys []string) (found int) {
	for _, key := range keys {
		key = textutil.NormalizeKey(key)
		entry, ok := idx.Lookup(key)
		if !ok {
			renderMissing(w, key, idx.Suggest(key, suggestionCount))
			continue
		}
		renderEntry(w, key, entry)
		found++
	}
	return found
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <appeals case number>...",
	Short: "Lists the supreme court verdicts and decisions that reference the given appeals court cases.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if !lookupSqlite {
			idx, err := index.Read(cfg.IndexPath)
			if err != nil {
				return fmt.Errorf("failed to read index: %w", err)
			}
			if len(idx) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Engin gögn fundust.")
				return exitStatus(1)
			}
			if lookupIndex(cmd.OutOrStdout(), idx, args) < len(args) {
				return exitStatus(1)
			}
			return nil
		}

		db, err := store.Open(cfg.SqlitePath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()

		missing := false
		for _, key := range args {
			key = textutil.NormalizeKey(key)
			records, err := db.ByAppealsNumber(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("failed to query db: %w", err)
			}
			if len(records) == 0 {
				renderMissing(cmd.OutOrStdout(), key, nil)
				missing = true
				continue
			}
			renderEntry(cmd.OutOrStdout(), key, index.Build(records)[key])
		}
		if missing {
			return exitStatus(1)
		}
		return nil
	},
}
