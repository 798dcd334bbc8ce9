package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

type reconstructOptions struct {
	dataset string
	root    string
}

// ReconstructResult is the outcome for one graph directory.
type ReconstructResult struct {
	Dir      string              `json:"dir"`
	Molecule *mtypes.MoleculeDTO `json:"molecule,omitempty"`
	Error    *common.ErrorDetail `json:"error,omitempty"`
}

// ReconstructReport is the output of the reconstruct command.
type ReconstructReport struct {
	Dataset   string              `json:"dataset"`
	Results   []ReconstructResult `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// NewReconstructCmd creates the reconstruct command.
func NewReconstructCmd() *cobra.Command {
	opts := &reconstructOptions{}

	cmd := &cobra.Command{
		Use:   "reconstruct [graph-dir...]",
		Short: "Rebuild molecules from graph directories",
		Long: "Reads x.npy, edge_index.npy and edge_attr.npy from each graph directory and\n" +
			"rebuilds the molecule through the dataset vocabulary.  With --root every\n" +
			"graph directory below the root is processed.  Failures are reported per\n" +
			"graph and do not stop the batch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.root == "" {
				return errors.InvalidParam("no graph directories given").WithDetail("pass directories or --root")
			}
			return runReconstruct(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "dataset vocabulary (default: dataset.default)")
	cmd.Flags().StringVar(&opts.root, "root", "", "process every graph directory below this root")
	return cmd
}

func runReconstruct(cmd *cobra.Command, opts *reconstructOptions, dirs []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	a := cliCtx.App
	ctx, cancel := cliCtx.withTimeout(cmd.Context())
	defer cancel()

	dataset := opts.dataset
	if dataset == "" {
		dataset = a.Config.Dataset.Default
	}
	if _, err := a.Conversion.Vocabulary(dataset); err != nil {
		return err
	}

	if opts.root != "" {
		found, err := a.Loader.GraphDirs(ctx, opts.root)
		if err != nil {
			return err
		}
		dirs = append(dirs, found...)
	}

	report := reconstruct(ctx, cliCtx, dataset, dirs)
	cliCtx.Logger.Info("reconstruct finished",
		logging.Dataset(dataset),
		logging.Int("graphs", len(dirs)),
		logging.Int("failed", report.Failed),
	)

	if cliCtx.JSON() {
		err = printJSON(cmd, report)
	} else {
		err = printReconstructTable(cmd, report)
	}
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d graphs failed", report.Failed, len(dirs))
	}
	return nil
}

// reconstruct loads every directory and rebuilds the loaded graphs as one
// batch.  Load failures and reconstruction failures land in the same report,
// in directory order.
func reconstruct(ctx context.Context, cliCtx *CLIContext, dataset string, dirs []string) ReconstructReport {
	a := cliCtx.App
	report := ReconstructReport{Dataset: dataset, Results: make([]ReconstructResult, len(dirs))}

	graphs := make([]*graph.Graph[int], 0, len(dirs))
	batchToDir := make([]int, 0, len(dirs))
	for i, dir := range dirs {
		report.Results[i].Dir = dir
		g, err := a.Loader.LoadGraph(ctx, dir)
		if err != nil {
			report.Results[i].Error = errorDetail(err)
			continue
		}
		graphs = append(graphs, g)
		batchToDir = append(batchToDir, i)
	}

	batch := a.Conversion.ReconstructBatch(ctx, dataset, graphs)
	failed := make(map[int]common.ErrorDetail, len(batch.Failed))
	for _, f := range batch.Failed {
		failed[f.Index] = f.Error
	}
	next := 0
	for b, i := range batchToDir {
		if detail, ok := failed[b]; ok {
			report.Results[i].Error = &detail
			continue
		}
		mol := batch.Succeeded[next]
		report.Results[i].Molecule = &mol
		next++
	}

	for _, r := range report.Results {
		if r.Error != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}
	return report
}

func printReconstructTable(cmd *cobra.Command, report ReconstructReport) error {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		if r.Error != nil {
			rows = append(rows, []string{r.Dir, "", "", "", statusCell(r.Error.Code)})
			continue
		}
		rows = append(rows, []string{
			r.Dir,
			r.Molecule.Formula,
			strconv.Itoa(len(r.Molecule.Atoms)),
			strconv.Itoa(len(r.Molecule.Bonds)),
			statusCell(""),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dataset: %s\n", report.Dataset)
	if err := renderTable(out, []string{"Graph", "Formula", "Atoms", "Bonds", "Status"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "Succeeded: %d  Failed: %d\n", report.Succeeded, report.Failed)
	for _, r := range report.Results {
		if r.Error != nil {
			fmt.Fprintf(out, "  %s: %s %s\n", r.Dir, r.Error.Message, r.Error.Detail)
		}
	}
	return nil
}

// errorDetail renders err the way batch failures are reported.
func errorDetail(err error) *common.ErrorDetail {
	d := &common.ErrorDetail{Code: errors.GetCode(err).String(), Message: err.Error()}
	var ae *errors.AppError
	if errors.As(err, &ae) {
		d.Message, d.Detail = ae.Message, ae.Detail
	}
	return d
}

//Personal.AI order the ending
