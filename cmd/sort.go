package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lepinkainen/filesorter/organize"
	"github.com/lepinkainen/filesorter/types"
	"github.com/lepinkainen/filesorter/ui"
)

// SortCmd scans a directory, resolves duplicate content and moves files into
// category subfolders.
type SortCmd struct {
	Directory        string   `arg:"" name:"directory" help:"Directory to organize" type:"existingdir"`
	Only             []string `help:"Restrict to these categories (comma-separated)" sep:"," xor:"selection"`
	Except           []string `help:"Exclude these categories (comma-separated)" sep:"," xor:"selection"`
	IgnoreDuplicates bool     `help:"Move duplicates without prompting"`
	NoTUI            bool     `name:"no-tui" help:"Use a plain line prompt for duplicate groups"`
}

// Run executes the pipeline: scan, resolve duplicates, move. Configuration
// and target-directory errors abort before anything is touched; per-file
// errors are reported and never change the exit status.
func (cmd *SortCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("filesorter %s", version)))

	registry := organize.DefaultRegistry()
	selection, err := organize.NewSelection(registry, cmd.Only, cmd.Except)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning %s...\n", cmd.Directory)
	result, err := organize.Scan(cmd.Directory, selection.TargetExtensions(registry), registry, os.Stdout)
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		fmt.Printf("%s\n", ui.WarnStyle.Render(fmt.Sprintf("⚠️  cannot read %s: %v (excluded)", failure.Path, failure.Err)))
	}

	if len(result.Records) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No matching files to sort"))
		return nil
	}
	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Found %d matching file(s)", len(result.Records))))

	records, err := organize.Resolve(result.Records, cmd.IgnoreDuplicates, cmd.resolver())
	if err != nil {
		return err
	}
	if skipped := len(result.Records) - len(records); skipped > 0 {
		fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Skipping %d file(s) from skipped duplicate groups", skipped)))
	}

	report := organize.Move(records, os.Stdout)

	for _, conflict := range report.Conflicts {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %v (skipped)", &conflict)))
	}
	for _, failure := range report.Failures {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ cannot move %s: %v (skipped)", failure.Path, failure.Err)))
	}

	summary := fmt.Sprintf("✅ Done: %d moved, %d skipped as duplicates, %d conflict(s), %d error(s)",
		report.Moved, len(result.Records)-len(records), len(report.Conflicts), len(report.Failures)+len(result.Failures))
	fmt.Printf("\n%s\n", ui.SuccessStyle.Render(summary))

	if len(report.Conflicts)+len(report.Failures)+len(result.Failures) > 0 {
		fmt.Println(ui.InfoStyle.Render("Per-file errors were reported above and do not affect the exit status."))
	}

	return nil
}

// resolver picks the duplicate-group frontend: the fullscreen TUI on a real
// terminal, a plain line prompt otherwise or when --no-tui is set.
func (cmd *SortCmd) resolver() organize.GroupResolver {
	if cmd.NoTUI || !isTerminal(os.Stdin.Fd()) || !isTerminal(os.Stdout.Fd()) {
		return &organize.ConsoleResolver{In: os.Stdin, Out: os.Stdout}
	}
	return ui.TUIResolver{}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
