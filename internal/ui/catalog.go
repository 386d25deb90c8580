package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/search"
)

func (a *App) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the lecture catalog",
	}
	cmd.AddCommand(a.catalogImportCmd())
	cmd.AddCommand(a.catalogStatsCmd())
	return cmd
}

func (a *App) catalogImportCmd() *cobra.Command {
	var partition string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON catalog partition into the database",
		Long: `Read a JSON array of lectures and replace the stored contents of one
partition. The database is the one named by catalog.db_path.

Example:
  timetable catalog import --partition majors schedules-majors.json
  timetable catalog import -p liberal-arts schedules-liberal-arts.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.ParsePartition(partition)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			lectures, err := catalog.Decode(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			repo, err := a.openDB()
			if err != nil {
				return err
			}
			n, err := repo.ImportLectures(cmd.Context(), p, lectures)
			if err != nil {
				return err
			}

			a.logger.Info().Str("partition", string(p)).Int("lectures", n).Str("file", args[0]).Msg("catalog imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s lectures into %s\n", formatStats(fmt.Sprint(n)), p)
			return nil
		},
	}

	cmd.Flags().StringVarP(&partition, "partition", "p", "", "Partition: majors or liberal-arts")
	_ = cmd.MarkFlagRequired("partition")
	return cmd
}

func (a *App) catalogStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lecture counts per partition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := a.openCache()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", formatHeader("Source:"), a.config.Catalog.Source)

			var (
				all  []lecture.Lecture
				errs []error
			)
			for _, p := range catalog.Partitions {
				lectures, err := cache.Fetch(ctx, p)
				if err != nil {
					fmt.Fprintf(out, "  %-14s %s\n", p, formatWarn("unavailable"))
					errs = append(errs, err)
					continue
				}
				all = append(all, lectures...)
				fmt.Fprintf(out, "  %-14s %s\n", p, formatStats(fmt.Sprint(len(lectures))))
			}
			fmt.Fprintf(out, "  %-14s %s\n", "total", formatStats(fmt.Sprint(len(all))))
			fmt.Fprintf(out, "  %-14s %d\n", "major values", len(search.Majors(all)))

			if len(errs) == len(catalog.Partitions) {
				return errors.Join(errs...)
			}
			for _, err := range errs {
				a.logger.Warn().Err(err).Msg("partition unavailable")
			}
			return nil
		},
	}
}
