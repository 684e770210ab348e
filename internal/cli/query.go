package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Kangyi02/DaoAI-assessment/internal/eval"
	"github.com/Kangyi02/DaoAI-assessment/internal/output"
	"github.com/Kangyi02/DaoAI-assessment/internal/query"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

// DefaultOutputFile is where query results go unless --output says otherwise.
const DefaultOutputFile = "output.txt"

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	QueryFile string
	QueryJSON string
	Output    string
	Parallel  int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Evaluate a selection query against the database",
		Long: `Evaluate a JSON selection query against the loaded points.

The query is an expression tree with exactly one top-level operation:
operator_crop selects points inside a rectangular region (optionally
filtered by category, group membership, or proper group containment),
operator_and intersects its operands, operator_or unions them. Matching
points are written one per line as "x y", sorted by y, then x.

Example:
  inspectdb query --query q.json
  inspectdb query --output - --query-json \
    '{"query":{"operator_crop":{"region":{"p_min":{"x":0,"y":0},"p_max":{"x":10,"y":10}}}}}'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.QueryFile, "query", "", "file containing the JSON query")
	cmd.Flags().StringVar(&opts.QueryJSON, "query-json", "", "JSON query given inline")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultOutputFile, `result file ("-" writes to stdout)`)
	cmd.Flags().IntVar(&opts.Parallel, "parallel", eval.DefaultParallelism, "operands evaluated concurrently")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	switch {
	case opts.QueryFile == "" && opts.QueryJSON == "":
		return fmt.Errorf("one of --query or --query-json is required")
	case opts.QueryFile != "" && opts.QueryJSON != "":
		return fmt.Errorf("--query and --query-json are mutually exclusive")
	}

	log := opts.Logger
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text := []byte(opts.QueryJSON)
	if opts.QueryFile != "" {
		var err error
		text, err = os.ReadFile(opts.QueryFile)
		if err != nil {
			return WrapExitError(ExitFailure, "io", err)
		}
	}

	root, err := query.Parse(text)
	if err != nil {
		return err
	}

	log.Info("opening database", "driver", opts.Config.Database.Driver, "dsn", opts.Config.Database.DSN)
	st, err := store.Open(ctx, store.Config{
		Driver: opts.Config.Database.Driver,
		DSN:    opts.Config.Database.DSN,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	parallel := opts.Config.Query.Parallelism
	if cmd.Flags().Changed("parallel") {
		parallel = opts.Parallel
	}

	ev := eval.New(st, eval.WithLogger(log), eval.WithParallelism(parallel))
	rs, err := ev.Evaluate(ctx, root)
	if err != nil {
		return err
	}

	pts := output.Finalize(rs)
	if opts.Output == "-" {
		if err := output.WritePoints(cmd.OutOrStdout(), pts); err != nil {
			return WrapExitError(ExitFailure, "io", err)
		}
		return nil
	}
	if err := output.WriteFile(opts.Output, pts); err != nil {
		return WrapExitError(ExitFailure, "io", err)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.OutOrStdout(), "wrote %d points to %s\n", len(pts), opts.Output)
	return nil
}
