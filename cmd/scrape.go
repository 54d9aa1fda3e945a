package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brogergvhs/bascrape/internal/config"
	"github.com/brogergvhs/bascrape/internal/fetch"
	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/providers/bawiki"
	"github.com/brogergvhs/bascrape/internal/providers/fandom"
	"github.com/brogergvhs/bascrape/internal/providers/wikiru"
	"github.com/brogergvhs/bascrape/internal/roster"
	"github.com/brogergvhs/bascrape/internal/ui"
	"github.com/brogergvhs/bascrape/internal/util"

	"github.com/spf13/cobra"
)

// panelSources lists the panel listings in the order they are scraped.
var panelSources = []string{"ja", "en", "aoharu"}

var (
	flagPick        bool
	flagUserAgent   string
	flagSkipSlots   bool
	flagPageDelay   time.Duration
	flagRosterDelay time.Duration
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape panels and rosters into JSON files. Uses the defaults from the selected config, overwritten by CLI flags",
}

func init() {
	scrapeCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	scrapeCmd.PersistentFlags().BoolVar(&flagSkipSlots, "skip-missing", false, "skip slots whose heading is missing instead of failing")
	scrapeCmd.PersistentFlags().DurationVar(&flagPageDelay, "page-delay", 0, "wait between listing pages (e.g. 2s)")
	scrapeCmd.PersistentFlags().DurationVar(&flagRosterDelay, "roster-delay", 0, "wait after each roster page (e.g. 10s)")

	panelsCmd := &cobra.Command{
		Use:       "panels [ja|en|aoharu]...",
		Short:     "Scrape the panel listings (all of them without arguments)",
		ValidArgs: panelSources,
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := args
			if len(sources) == 0 && flagPick {
				picked, err := pickSources()
				if err != nil {
					return err
				}
				sources = picked
			}
			if len(sources) == 0 {
				sources = panelSources
			}

			return runScrape(cmd.Context(), func(ctx context.Context, r *run) error {
				return r.panels(ctx, sources)
			})
		},
	}
	panelsCmd.Flags().BoolVar(&flagPick, "pick", false, "choose the listing interactively")

	studentsCmd := &cobra.Command{
		Use:   "students",
		Short: "Scrape the student roster and the Japanese name list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd.Context(), func(ctx context.Context, r *run) error {
				return r.students(ctx)
			})
		},
	}

	npcsCmd := &cobra.Command{
		Use:   "npcs",
		Short: "Scrape the NPC roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd.Context(), func(ctx context.Context, r *run) error {
				return r.npcs(ctx)
			})
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Scrape every panel listing and roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd.Context(), func(ctx context.Context, r *run) error {
				if err := r.panels(ctx, panelSources); err != nil {
					return err
				}
				if err := r.students(ctx); err != nil {
					return err
				}
				return r.npcs(ctx)
			})
		},
	}

	scrapeCmd.AddCommand(panelsCmd, studentsCmd, npcsCmd, allCmd)
	rootCmd.AddCommand(scrapeCmd)
}

func pickSources() ([]string, error) {
	items := append([]string{"all"}, panelSources...)
	idx, err := choose("Select listing", items)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return panelSources, nil
	}
	return []string{items[idx]}, nil
}

func scrapeOptions() config.Options {
	return config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Output:           flagOutput,
		UserAgent:        flagUserAgent,
		PageDelay:        flagPageDelay,
		RosterDelay:      flagRosterDelay,
		SkipMissingSlots: flagSkipSlots,
	}
}

// run holds what every scrape step shares.
type run struct {
	cfg     *config.Config
	log     *ui.Logger
	fetcher *fetch.Fetcher
	tables  *roster.Tables
	pm      *ui.MPBProgressManager
	stats   *ui.Stats
}

func runScrape(ctx context.Context, step func(context.Context, *run) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, usedPath, err := config.LoadMerged(scrapeOptions())
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	fmt.Printf("Config file: %s\n", usedPath)
	if cfg.Debug {
		fmt.Println("Full config:")
		cfg.Print()
		fmt.Println()
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.Timeout,
		UserAgent:   cfg.UserAgent,
		DebugLogger: logSvc,
	})

	r := &run{
		cfg:     cfg,
		log:     logSvc,
		fetcher: fetch.New(client),
		tables:  roster.Default(),
		pm:      ui.NewProgressManager(os.Stderr),
		stats:   &ui.Stats{},
	}

	start := time.Now()
	err = step(ctx, r)
	r.pm.Close()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Scrape Summary:")
	fmt.Printf("Pages:      %d\n", r.stats.TotalPages.Load())
	fmt.Printf("Panels:     %d\n", r.stats.TotalPanels.Load())
	fmt.Printf("Characters: %d\n", r.stats.TotalCharacters.Load())
	fmt.Printf("Files:      %d\n", r.stats.TotalFiles.Load())
	fmt.Printf("Data:       %s\n", util.Human(r.fetcher.Received()))
	fmt.Printf("Time:       %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

func (r *run) sourceURL(source string) (string, error) {
	switch source {
	case "ja":
		return r.cfg.URLs.Ja, nil
	case "en":
		return r.cfg.URLs.En, nil
	case "aoharu":
		return r.cfg.URLs.Aoharu, nil
	}
	return "", fmt.Errorf("unknown panel source %q", source)
}

func (r *run) panels(ctx context.Context, sources []string) error {
	policy := wikiru.FailOnMissing
	if r.cfg.SkipMissingSlots {
		policy = wikiru.SkipMissing
	}

	for _, source := range sources {
		startURL, err := r.sourceURL(source)
		if err != nil {
			return err
		}

		handle := r.pm.Register(source)
		pag, err := wikiru.NewPaginator(r.fetcher, wikiru.Options{
			BaseURL:    r.cfg.URLs.Base,
			DeletedURL: r.cfg.URLs.Deleted,
			Delay:      r.cfg.PageDelay,
			Policy:     policy,
			Logger:     r.log,
			Progress:   handle,
		})
		if err != nil {
			handle.MarkDone()
			return err
		}

		panels, err := pag.FetchAll(ctx, startURL)
		handle.MarkDone()
		r.stats.TotalPages.Add(handle.Pages())
		if err != nil {
			return fmt.Errorf("%s panels: %w", source, err)
		}

		r.stats.TotalPanels.Add(int64(len(panels)))
		if err := r.write(source+".json", panels); err != nil {
			return err
		}
	}

	return nil
}

func (r *run) students(ctx context.Context) error {
	students, err := bawiki.FetchCharacters(ctx, r.fetcher, r.cfg.URLs.Characters, r.tables)
	if err != nil {
		return fmt.Errorf("students: %w", err)
	}
	if err := r.rosterPause(ctx); err != nil {
		return err
	}

	if err := writeRoster(r, "students", students); err != nil {
		return err
	}

	names, err := wikiru.FetchCharacterNames(ctx, r.fetcher, r.cfg.URLs.JaCharacters)
	if err != nil {
		return fmt.Errorf("wikiru characters: %w", err)
	}
	if err := r.rosterPause(ctx); err != nil {
		return err
	}

	r.stats.TotalCharacters.Add(int64(len(names)))
	return r.write(filepath.Join("students", "wikiru.json"), names)
}

func (r *run) npcs(ctx context.Context) error {
	npcs, err := fandom.FetchNPCs(ctx, r.fetcher, r.cfg.URLs.NPC, r.tables)
	if err != nil {
		return fmt.Errorf("npcs: %w", err)
	}
	if err := r.rosterPause(ctx); err != nil {
		return err
	}

	return writeRoster(r, "npc", npcs)
}

func (r *run) rosterPause(ctx context.Context) error {
	r.log.Debugf("Waiting %s", r.cfg.RosterDelay)
	return util.Sleep(ctx, r.cfg.RosterDelay)
}

// writeRoster writes the by-id and by-kana mappings of records under dir.
func writeRoster[T roster.Record](r *run, dir string, records []T) error {
	for _, c := range roster.Collisions(records) {
		r.log.Debugf("%s: %d records share %s key %q, keeping the last", dir, c.Count, c.Keyspace, c.Key)
	}

	byID, byKana := roster.BuildMapping(records)
	r.log.Infof("%s: %d records, %d ids, %d kana", dir, len(records), len(byID), len(byKana))
	r.stats.TotalCharacters.Add(int64(len(byID)))

	if err := r.write(filepath.Join(dir, "en.json"), byID); err != nil {
		return err
	}
	return r.write(filepath.Join(dir, "ja.json"), byKana)
}

func (r *run) write(name string, v any) error {
	path := filepath.Join(r.cfg.Output, name)
	if err := util.WriteJSON(path, v); err != nil {
		return err
	}
	r.stats.TotalFiles.Add(1)
	r.log.Debugf("Wrote %s", path)
	return nil
}

var (
	_ wikiru.Progress  = (*ui.ProgressHandle)(nil)
	_ providers.Logger = (*ui.Logger)(nil)
)
