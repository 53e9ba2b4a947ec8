package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ctfmt/internal/cache"
	"ctfmt/internal/diagfmt"
	"ctfmt/internal/driver"
	"ctfmt/internal/trace"
	"ctfmt/internal/ui"
	"ctfmt/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <manifest.toml|manifest.yaml>...",
	Short: "Validate the templates listed in manifests",
	Long: `Compile every template of the given manifests against its argument types
and report the first problem of each template with a caret diagnostic`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|short|json|sarif), default from config or pretty")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto or config)")
	checkCmd.Flags().Bool("fix", false, "print templates repaired with the suggested edits")
	checkCmd.Flags().Bool("fixits", true, "show fix-it suggestions under the caret")
	checkCmd.Flags().Bool("preview", false, "show each template after its first suggested edit")
	checkCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the disk cache (also enabled by config)")
	checkCmd.Flags().String("cache-dir", "", "disk cache directory (default: $XDG_CACHE_HOME/ctfmt)")
	checkCmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if formatStr == "" {
		formatStr = sess.cfg.Format
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = sess.cfg.Jobs
	}
	repair, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}
	showFixits, err := cmd.Flags().GetBool("fixits")
	if err != nil {
		return fmt.Errorf("failed to get fixits flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := parseSwitch("ui", uiFlag)
	if err != nil {
		return err
	}
	useTUI := format == diagfmt.FormatPretty &&
		uiMode.enabled(func() bool { return isTerminal(os.Stdout) && !sess.quiet })

	diskCache, err := openCache(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: sess.maxDiag,
		Cache:          diskCache,
		Engine:         version.Version,
		Repair:         repair,
		Log:            sess.log,
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "check")

	var res *driver.Result
	if useTUI {
		res, err = ui.RunCheck(os.Stdout, "checking templates", func(events chan<- driver.Event) (*driver.Result, error) {
			o := opts
			o.Events = events
			return driver.Check(ctx, args, o)
		})
	} else {
		res, err = driver.Check(ctx, args, opts)
	}
	span.End("")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := reportEntryErrors(res)
	werr := diagfmt.Write(out, res.Bag, format, diagfmt.Options{
		Pretty: diagfmt.PrettyOpts{Color: sess.color, ShowFixits: showFixits, ShowPreview: preview, Max: sess.maxDiag},
		JSON:   diagfmt.JSONOpts{Max: sess.maxDiag, IncludeFixits: showFixits, IncludePreviews: preview},
		Sarif:  diagfmt.SarifRunMeta{ToolName: "ctfmt", ToolVersion: version.Version, InvocationArgs: os.Args},
	})
	if werr != nil {
		return werr
	}
	if repair {
		printRepairs(out, res)
	}
	if sess.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
	}
	if !sess.quiet && format == diagfmt.FormatPretty {
		printSummary(cmd.ErrOrStderr(), res)
	}
	if failed || res.Failed > 0 {
		return errReported
	}
	return nil
}

func openCache(cmd *cobra.Command) (*cache.Disk, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	drop, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if dir == "" {
		dir = sess.cfg.Cache.Dir
	}
	if !enabled && !sess.cfg.Cache.Enabled && !drop {
		return nil, nil
	}

	var c *cache.Disk
	if dir != "" {
		c, err = cache.Open(dir)
	} else {
		c, err = cache.OpenDefault("ctfmt")
	}
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if drop {
		if err := c.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
		sess.log.WithField("dir", c.Dir()).Info("cache cleared")
	}
	if !enabled && !sess.cfg.Cache.Enabled {
		return nil, nil
	}
	sess.log.WithField("dir", c.Dir()).Debug("using disk cache")
	return c, nil
}

// reportEntryErrors logs problems that are not template diagnostics.
func reportEntryErrors(res *driver.Result) bool {
	failed := false
	for _, mr := range res.Manifests {
		if mr.Err != nil {
			sess.log.Error(mr.Err)
			failed = true
		}
		for _, tr := range mr.Templates {
			if tr.Err != nil {
				sess.log.WithField("template", tr.Origin).Error(tr.Err)
			}
			if tr.OK() && tr.Output != "" {
				sess.log.WithField("template", tr.Origin).Debugf("rendered %q", tr.Output)
			}
		}
	}
	return failed
}

func printRepairs(out io.Writer, res *driver.Result) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	for _, mr := range res.Manifests {
		for _, tr := range mr.Templates {
			rep := tr.Repaired
			if rep == nil {
				continue
			}
			if rep.Fixed() {
				fmt.Fprintf(out, "%s: %s %q\n", tr.Origin, ok.Sprint("fixed:"), rep.Template)
				continue
			}
			fmt.Fprintf(out, "%s: %s %s\n", tr.Origin, bad.Sprint("cannot fix:"), rep.Remaining.Message)
		}
	}
}

func printSummary(w io.Writer, res *driver.Result) {
	status := color.New(color.FgGreen, color.Bold).Sprint("ok")
	if res.Failed > 0 {
		status = color.New(color.FgRed, color.Bold).Sprint("failed")
	}
	fmt.Fprintf(w, "%s: %d template(s) checked, %d failed", status, res.Checked, res.Failed)
	if res.CacheHits > 0 {
		fmt.Fprintf(w, ", %d from cache", res.CacheHits)
	}
	fmt.Fprintln(w)
}
