package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/errors"
	pkgio "github.com/matzehuels/citemap/pkg/io"
)

// inputFlags selects a dataset: a nodes/edges CSV pair or a dataset JSON
// file given as the positional argument.
type inputFlags struct {
	nodes string
	edges string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nodes, "nodes", "", "nodes CSV (index,node_id,label,subject,features)")
	cmd.Flags().StringVar(&f.edges, "edges", "", "edges CSV (index,source,target)")
}

// load reads the dataset and returns it with a base name for output files.
func (f *inputFlags) load(args []string) (*pkgio.Dataset, string, error) {
	switch {
	case f.nodes != "" || f.edges != "":
		if len(args) > 0 {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "give either --nodes/--edges or a dataset file, not both")
		}
		if f.nodes == "" || f.edges == "" {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "--nodes and --edges must be given together")
		}
		d, err := pkgio.ImportCSV(f.nodes, f.edges)
		if err != nil {
			return nil, "", err
		}
		return d, baseName(f.nodes), nil
	case len(args) == 1:
		d, err := pkgio.ImportJSON(args[0])
		if err != nil {
			return nil, "", err
		}
		return d, baseName(args[0]), nil
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "no input: give --nodes and --edges, or a dataset JSON file")
	}
}

// baseName strips the directory and extension: "data/cora.json" gives "cora".
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
