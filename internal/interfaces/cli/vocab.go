package cli

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// NewVocabCmd creates the vocab command group.
func NewVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the registered dataset vocabularies",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered vocabularies",
		Args:  cobra.NoArgs,
		RunE:  runVocabList,
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the atom and bond codes of one vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE:  runVocabShow,
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func runVocabList(cmd *cobra.Command, _ []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	svc := cliCtx.App.Conversion

	var vocabs []mtypes.VocabularyDTO
	for _, name := range svc.Datasets() {
		v, err := svc.Vocabulary(name)
		if err != nil {
			return err
		}
		vocabs = append(vocabs, v.ToDTO())
	}

	if cliCtx.JSON() {
		return printJSON(cmd, vocabs)
	}
	rows := make([][]string, len(vocabs))
	for i, v := range vocabs {
		rows[i] = []string{v.Name, strconv.FormatBool(v.OneHot), strconv.Itoa(len(v.Nodes)), strconv.Itoa(len(v.Edges))}
	}
	return renderTable(cmd.OutOrStdout(), []string{"Name", "One-Hot", "Atom Codes", "Bond Codes"}, rows)
}

func runVocabShow(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	v, err := cliCtx.App.Conversion.Vocabulary(args[0])
	if err != nil {
		return err
	}
	dto := v.ToDTO()

	if cliCtx.JSON() {
		return printJSON(cmd, dto)
	}

	var rows [][]string
	for _, code := range sortedKeys(dto.Nodes) {
		rows = append(rows, []string{"atom", strconv.Itoa(code), dto.Nodes[code]})
	}
	for _, code := range sortedKeys(dto.Edges) {
		rows = append(rows, []string{"bond", strconv.Itoa(code), dto.Edges[code].String()})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Kind", "Code", "Value"}, rows)
}

func sortedKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

//Personal.AI order the ending
