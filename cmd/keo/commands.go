package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cognicore/keo/internal/importer"
	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/maintenance"
	"github.com/cognicore/keo/pkg/keo/store"
)

const (
	defaultTrendEntries = 30
	defaultKeywords     = 30
)

func newRootCmd(getenv func(string) string) *cobra.Command {
	var flags globalFlags
	root := &cobra.Command{
		Use:          "keo",
		Short:        "Keo - journal insight engine",
		Long:         `Keo analyzes journal entries: sentiment, emotions, themes, trends and keyword clouds.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&flags.lexiconPath, "lexicon", "", "YAML lexicon override (replaces lexicon.path)")
	pf.StringVar(&flags.logMode, "log-mode", "", "log mode: dev or prod")
	pf.StringVar(&flags.driver, "store", "", "store driver: memory, sqlite or postgres")
	pf.StringVar(&flags.dsn, "dsn", "", "store DSN (sqlite path or postgres URL)")
	pf.StringVar(&flags.strategy, "strategy", "", "analysis strategy: lexical or remote")

	// run opens the runtime for a command and closes it afterwards.
	run := func(fn func(ctx context.Context, rt *runtime, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rt, cleanup, err := buildRuntime(ctx, flags, getenv)
			if err != nil {
				return err
			}
			defer cleanup()
			return fn(ctx, rt, cmd.OutOrStdout(), args)
		}
	}

	root.AddCommand(
		newImportCmd(run),
		newAnalyzeCmd(run),
		newTrendsCmd(run),
		newKeywordsCmd(run),
		newPromptCmd(run),
		newCardsCmd(run),
		newRefreshCmd(run),
	)
	return root
}

type runner func(fn func(ctx context.Context, rt *runtime, out io.Writer, args []string) error) func(*cobra.Command, []string) error

func newImportCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Import entries from a JSONL file",
		Long: `Import journal entries, one JSON object per line:

  {"owner_id": "u1", "title": "Monday", "text": "...", "created_at": "2026-03-02T08:00:00Z"}

Malformed lines are skipped with a warning. HTML is reduced to plain text.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, args []string) error {
			entries, err := importer.LoadFile(args[0], rt.log)
			if err != nil {
				return err
			}
			n, err := importer.Import(ctx, rt.store, entries)
			fmt.Fprintf(out, "imported %d entries\n", n)
			return err
		}),
	}
}

func newAnalyzeCmd(run runner) *cobra.Command {
	var (
		id   int64
		save bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the insight for one entry",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, _ []string) error {
			if id <= 0 {
				return fmt.Errorf("%w: --id is required", internalerr.ErrInvalidInput)
			}
			doc, err := rt.store.GetEntry(ctx, id)
			if err != nil {
				return err
			}
			insight := rt.engine.AnalyzeEntryCached(ctx, doc.Text, doc.ID, doc.OwnerID, doc.Version)
			if save {
				card, err := cards.New().Entry(doc, insight, rt.engine.Related(ctx, doc.Text, doc.ID, doc.OwnerID))
				if err != nil {
					return err
				}
				if err := rt.store.SaveCard(ctx, card); err != nil {
					return err
				}
				rt.log.Info("saved entry card", "card", card.ID, "entry", doc.ID)
			}
			return writeJSON(out, insight)
		}),
	}
	cmd.Flags().Int64Var(&id, "id", 0, "entry id")
	cmd.Flags().BoolVar(&save, "save", false, "store the insight as a card")
	return cmd
}

func newTrendsCmd(run runner) *cobra.Command {
	var (
		owner string
		limit int
		save  bool
	)
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Print the trend report over an owner's recent entries",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, _ []string) error {
			if owner == "" {
				return fmt.Errorf("%w: --owner is required", internalerr.ErrInvalidInput)
			}
			docs, err := rt.store.ListEntries(ctx, owner, limit)
			if err != nil {
				return err
			}
			report := rt.engine.AnalyzeTrends(ctx, docs)
			if save {
				card, err := cards.New().Trends(owner, report, docs)
				if err != nil {
					return err
				}
				if err := rt.store.SaveCard(ctx, card); err != nil {
					return err
				}
			}
			return writeJSON(out, report)
		}),
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	cmd.Flags().IntVar(&limit, "limit", defaultTrendEntries, "most recent entries to include")
	cmd.Flags().BoolVar(&save, "save", false, "store the report as a card")
	return cmd
}

func newKeywordsCmd(run runner) *cobra.Command {
	var (
		owner string
		top   int
		limit int
		save  bool
	)
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Print the keyword cloud of an owner's entries",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, _ []string) error {
			if owner == "" {
				return fmt.Errorf("%w: --owner is required", internalerr.ErrInvalidInput)
			}
			docs, err := rt.store.ListEntries(ctx, owner, limit)
			if err != nil {
				return err
			}
			cloud := rt.engine.ExtractKeywordCloud(docs, top)
			if save {
				card, err := cards.New().Keywords(owner, cloud)
				if err != nil {
					return err
				}
				if err := rt.store.SaveCard(ctx, card); err != nil {
					return err
				}
			}
			return writeJSON(out, cloud)
		}),
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	cmd.Flags().IntVar(&top, "top", defaultKeywords, "number of keywords")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "most recent entries to include")
	cmd.Flags().BoolVar(&save, "save", false, "store the cloud as a card")
	return cmd
}

func newPromptCmd(run runner) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Suggest an opening prompt for a new entry",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, _ []string) error {
			_, err := fmt.Fprintln(out, rt.engine.OpeningPrompt(ctx, owner))
			return err
		}),
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	return cmd
}

func newCardsCmd(run runner) *cobra.Command {
	var (
		owner string
		kind  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List saved cards",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, _ []string) error {
			if owner == "" {
				return fmt.Errorf("%w: --owner is required", internalerr.ErrInvalidInput)
			}
			list, err := rt.store.ListCards(ctx, owner, cards.Kind(kind), limit)
			if err != nil {
				return err
			}
			if list == nil {
				list = []cards.Card{}
			}
			return writeJSON(out, list)
		}),
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	cmd.Flags().StringVar(&kind, "kind", "", "card kind: entry, trends or keywords (default all)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum cards")
	return cmd
}

func newRefreshCmd(run runner) *cobra.Command {
	var (
		owner string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Re-analyze an owner's entries and save fresh entry cards",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, rt *runtime, out io.Writer, _ []string) error {
			if owner == "" {
				return fmt.Errorf("%w: --owner is required", internalerr.ErrInvalidInput)
			}
			r := &maintenance.Refresher{Store: rt.store, Analyzer: rt.engine, Log: rt.log}
			res, err := r.Refresh(ctx, owner, limit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "processed %d, saved %d, errors %d\n", res.Processed, res.Saved, res.Errors)
			return err
		}),
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "most recent entries to refresh")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
