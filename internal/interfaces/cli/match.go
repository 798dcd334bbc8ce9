package cli

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/application/registers"
	"github.com/turtacn/molgraph/internal/infrastructure/storage/dataset"
	"github.com/turtacn/molgraph/pkg/errors"
)

// MatchRow is the matches of one processed graph directory.
type MatchRow struct {
	Processed string   `json:"processed"`
	Compiled  []string `json:"compiled"`
}

// MatchReport is the output of the match command.
type MatchReport struct {
	Rows    []MatchRow `json:"rows"`
	Matched int        `json:"matched"`
}

// NewMatchCmd creates the match command.
func NewMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <processed-root> <compiled-root>",
		Short: "Match coordinate registers between two graph collections",
		Long: "Reads pos.npy from every graph directory below both roots and reports, for\n" +
			"each processed graph, the compiled graphs whose pairwise-distance signature\n" +
			"is identical.  Compiled graphs are identified by their directory name.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], args[1])
		},
	}
}

func runMatch(cmd *cobra.Command, processedRoot, compiledRoot string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := cliCtx.withTimeout(cmd.Context())
	defer cancel()

	processed, err := loadEntries(ctx, cliCtx.App.Loader, processedRoot)
	if err != nil {
		return err
	}
	compiled, err := loadEntries(ctx, cliCtx.App.Loader, compiledRoot)
	if err != nil {
		return err
	}

	p := make([]registers.Registered, len(processed))
	for i, e := range processed {
		p[i] = e
	}
	c := make([]registers.Identified, len(compiled))
	for i, e := range compiled {
		c[i] = e
	}
	corr := cliCtx.App.Registers.Match(ctx, p, c)

	report := MatchReport{Rows: make([]MatchRow, len(processed)), Matched: corr.Matched()}
	for i, e := range processed {
		report.Rows[i] = MatchRow{Processed: e.ID(), Compiled: corr[i]}
	}

	if cliCtx.JSON() {
		return printJSON(cmd, report)
	}
	rows := make([][]string, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = []string{r.Processed, strconv.Itoa(len(r.Compiled)), strings.Join(r.Compiled, ", ")}
	}
	out := cmd.OutOrStdout()
	if err := renderTable(out, []string{"Processed", "Matches", "Compiled"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "Matched: %d of %d\n", report.Matched, len(report.Rows))
	return nil
}

// loadEntries reads the register of every graph directory below root.  The
// entry ID is the directory name.
func loadEntries(ctx context.Context, loader *dataset.Loader, root string) ([]*registers.Entry, error) {
	dirs, err := loader.GraphDirs(ctx, root)
	if err != nil {
		return nil, err
	}
	entries := make([]*registers.Entry, 0, len(dirs))
	for _, dir := range dirs {
		m, err := loader.LoadCoords(ctx, dir)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "failed to load register").WithDetailf("dir=%s", dir)
		}
		reg, err := registers.RegisterFromMatrix(m)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "invalid register").WithDetailf("dir=%s", dir)
		}
		entries = append(entries, registers.EntryOf(path.Base(dir), reg))
	}
	return entries, nil
}

//Personal.AI order the ending
