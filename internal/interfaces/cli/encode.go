package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/molecule"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/storage/dataset"
	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

type encodeOptions struct {
	dataset string
	out     string
}

// EncodeReport is the output of the encode command.
type EncodeReport struct {
	Dataset string          `json:"dataset"`
	Dir     string          `json:"dir,omitempty"`
	Graph   mtypes.GraphDTO `json:"graph"`
}

// NewEncodeCmd creates the encode command.
func NewEncodeCmd() *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode <molecule.json|->",
		Short: "Encode a molecule into a dataset graph",
		Long: "Reads a molecule in JSON form (atoms and bonds) from a file or stdin and\n" +
			"encodes it with the dataset vocabulary.  With --out the graph is written as\n" +
			"a graph directory to the configured dataset source.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "dataset vocabulary (default: dataset.default)")
	cmd.Flags().StringVar(&opts.out, "out", "", "graph directory to write below the dataset root")
	return cmd
}

func runEncode(cmd *cobra.Command, opts *encodeOptions, input string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	a := cliCtx.App
	ctx, cancel := cliCtx.withTimeout(cmd.Context())
	defer cancel()

	dto, err := readMolecule(cmd, input)
	if err != nil {
		return err
	}
	m, err := molecule.FromDTO(dto)
	if err != nil {
		return err
	}

	ds := opts.dataset
	if ds == "" {
		ds = a.Config.Dataset.Default
	}
	g, err := a.Conversion.Encode(ctx, ds, m)
	if err != nil {
		return err
	}

	report := EncodeReport{Dataset: ds, Dir: opts.out, Graph: graph.ToDTO(g)}
	if opts.out != "" {
		sink, err := a.Sink()
		if err != nil {
			return err
		}
		if err := dataset.SaveGraph(ctx, sink, opts.out, g); err != nil {
			return err
		}
		cliCtx.Logger.Info("graph written",
			logging.Dataset(ds),
			logging.String("dir", opts.out),
			logging.Int("nodes", g.NumNodes()),
			logging.Int("edges", g.NumEdges()),
		)
	}

	if cliCtx.JSON() || opts.out == "" {
		return printJSON(cmd, report)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Encoded %s (%d nodes, %d edges) for %s into %s\n",
		m.Formula(), g.NumNodes(), g.NumEdges(), ds, opts.out)
	return nil
}

func readMolecule(cmd *cobra.Command, input string) (mtypes.MoleculeDTO, error) {
	var r io.Reader
	if input == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(input)
		if err != nil {
			return mtypes.MoleculeDTO{}, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot open molecule file").
				WithDetailf("file=%s", input)
		}
		defer f.Close()
		r = f
	}

	var dto mtypes.MoleculeDTO
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return mtypes.MoleculeDTO{}, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid molecule JSON").
			WithDetail(err.Error())
	}
	return dto, nil
}

//Personal.AI order the ending
