package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/internal/infrastructure/storage/dataset"
	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

const coMoleculeJSON = `{"atoms":[{"index":0,"symbol":"C"},{"index":1,"symbol":"O"}],
	"bonds":[{"begin":0,"end":1,"type":"double"}]}`

type fixture struct {
	root   string
	config string
}

func oneHot(idx, width int) graph.Feature {
	v := make([]float64, width)
	v[idx] = 1
	return graph.Vector(v...)
}

// newFixture writes a config file and a dataset root holding:
//
//	graphs/0     C=O
//	graphs/1     an edge whose feature decodes to nothing
//	processed/0  a unit segment; processed/1 a segment of length 3
//	compiled/a   a shifted unit segment; compiled/b a segment of length 2
func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(root, 0o755))
	src := storage.NewLocalSource(root)
	ctx := context.Background()

	good := graph.New[int]()
	good.AddNode(0, oneHot(2, 18))
	good.AddNode(1, oneHot(3, 18))
	good.AddEdge(0, 1, oneHot(2, 4))
	require.NoError(t, dataset.SaveGraph(ctx, src, "graphs/0", good))

	bad := graph.New[int]()
	bad.AddNode(0, oneHot(2, 18))
	bad.AddNode(1, oneHot(2, 18))
	bad.AddEdge(0, 1, graph.Vector(0, 0, 0, 0))
	require.NoError(t, dataset.SaveGraph(ctx, src, "graphs/1", bad))

	coords := map[string][]float64{
		"processed/0": {0, 0, 1, 0},
		"processed/1": {0, 0, 3, 0},
		"compiled/a":  {5, 5, 6, 5},
		"compiled/b":  {0, 0, 2, 0},
	}
	for name, data := range coords {
		require.NoError(t, dataset.SaveCoords(ctx, src, name, mat.NewDense(2, 2, data)))
	}

	cfgPath := filepath.Join(dir, "molgraph.yaml")
	cfg := "log:\n  level: error\nmetrics:\n  enabled: false\ndataset:\n  root: " + root + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return fixture{root: root, config: cfgPath}
}

func (f fixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", f.config, "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// ─────────────────────────────────────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────────────────────────────────────

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "molgraph", cmd.Use)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"reconstruct", "encode", "match", "vocab", "serve", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	for _, flag := range []string{"config", "log-level", "output", "no-color", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %q", flag)
	}
}

func TestVersion_RunsWithoutConfig(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", "/does/not/exist.yaml", "version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "molgraph dev")
}

func TestRoot_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "", "-o", "yaml", "vocab", "list")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "vocab", "list"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")
}

// ─────────────────────────────────────────────────────────────────────────────
// vocab
// ─────────────────────────────────────────────────────────────────────────────

func TestVocabList(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "", "-o", "json", "vocab", "list")
	require.NoError(t, err)
	var vocabs []mtypes.VocabularyDTO
	require.NoError(t, json.Unmarshal([]byte(out), &vocabs))
	require.Len(t, vocabs, 1)
	assert.Equal(t, "PTC_FM", vocabs[0].Name)

	out, err = f.run(t, "", "vocab", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PTC_FM")
}

func TestVocabShow(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "", "vocab", "show", "PTC_FM")
	require.NoError(t, err)
	assert.Contains(t, out, "Cl")
	assert.Contains(t, out, "AROMATIC")

	_, err = f.run(t, "", "vocab", "show", "PTC_MR")
	assert.True(t, errors.IsCode(err, errors.ErrCodeVocabularyNotFound))
}

// ─────────────────────────────────────────────────────────────────────────────
// reconstruct
// ─────────────────────────────────────────────────────────────────────────────

func TestReconstruct_Root(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "", "-o", "json", "reconstruct", "--root", "graphs")
	require.Error(t, err)
	assert.Equal(t, "1 of 2 graphs failed", err.Error())

	var report ReconstructReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "PTC_FM", report.Dataset)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 2)

	assert.Equal(t, "graphs/0", report.Results[0].Dir)
	require.NotNil(t, report.Results[0].Molecule)
	assert.Equal(t, "CO", report.Results[0].Molecule.Formula)
	assert.Nil(t, report.Results[0].Error)

	assert.Equal(t, "graphs/1", report.Results[1].Dir)
	require.NotNil(t, report.Results[1].Error)
	assert.Equal(t, "GRP_001", report.Results[1].Error.Code)
}

func TestReconstruct_LoadFailureDoesNotStopBatch(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "", "reconstruct", "graphs/missing", "graphs/0")
	require.Error(t, err)
	assert.Contains(t, out, "CO")
	assert.Contains(t, out, "COMMON_005")
	assert.Contains(t, out, "Succeeded: 1  Failed: 1")
}

func TestReconstruct_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "", "reconstruct")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = f.run(t, "", "reconstruct", "--dataset", "PTC_MR", "graphs/0")
	assert.True(t, errors.IsCode(err, errors.ErrCodeVocabularyNotFound))

	out, err := f.run(t, "", "reconstruct", "graphs/0")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

// ─────────────────────────────────────────────────────────────────────────────
// encode
// ─────────────────────────────────────────────────────────────────────────────

func TestEncode_Stdin(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, coMoleculeJSON, "encode", "-")
	require.NoError(t, err)

	var report EncodeReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "PTC_FM", report.Dataset)
	require.Len(t, report.Graph.Nodes, 2)
	assert.Equal(t, oneHot(3, 18).Values(), report.Graph.Nodes[1].X.Values)
	require.Len(t, report.Graph.Edges, 1)
	assert.Equal(t, oneHot(2, 4).Values(), report.Graph.Edges[0].EdgeAttr.Values)
}

func TestEncode_WriteThenReconstruct(t *testing.T) {
	f := newFixture(t)
	molFile := filepath.Join(t.TempDir(), "co.json")
	require.NoError(t, os.WriteFile(molFile, []byte(coMoleculeJSON), 0o644))

	out, err := f.run(t, "", "encode", molFile, "--out", "encoded/0")
	require.NoError(t, err)
	assert.Contains(t, out, "Encoded CO (2 nodes, 1 edges) for PTC_FM into encoded/0")
	assert.FileExists(t, filepath.Join(f.root, "encoded", "0", dataset.FileX))
	assert.FileExists(t, filepath.Join(f.root, "encoded", "0", dataset.FileEdgeAttr))

	out, err = f.run(t, "", "-o", "json", "reconstruct", "encoded/0")
	require.NoError(t, err)
	var report ReconstructReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Results[0].Molecule)
	assert.Equal(t, "CO", report.Results[0].Molecule.Formula)
}

func TestEncode_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "{", "encode", "-")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = f.run(t, "", "encode", filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = f.run(t, `{"atoms":[{"index":0,"symbol":"H"}]}`, "encode", "-")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownAtomType))
}

// ─────────────────────────────────────────────────────────────────────────────
// match
// ─────────────────────────────────────────────────────────────────────────────

func TestMatch(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "", "-o", "json", "match", "processed", "compiled")
	require.NoError(t, err)

	var report MatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Matched)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "0", report.Rows[0].Processed)
	assert.Equal(t, []string{"a"}, report.Rows[0].Compiled)
	assert.Equal(t, "1", report.Rows[1].Processed)
	assert.Empty(t, report.Rows[1].Compiled)

	out, err = f.run(t, "", "match", "processed", "compiled")
	require.NoError(t, err)
	assert.Contains(t, out, "Matched: 1 of 2")
}

func TestMatch_MissingRegister(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "", "match", "graphs", "compiled")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

//Personal.AI order the ending
