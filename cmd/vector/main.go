package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limpo1989/vector/internal/scenario"
)

var verbose bool

// main exits with status 1 when the selected command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vector",
		Short:        "replay scripted workloads against a growable vector",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every reallocation and step")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml...]",
		Short: "run scenarios and print the vector state after each step",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScenarios,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [scenario.yaml...]",
		Short: "parse and validate scenarios without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  validateScenarios,
	}

	rootCmd.AddCommand(runCmd, validateCmd)
	return rootCmd
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runScenarios(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	runner := scenario.NewRunner(logger)
	out := cmd.OutOrStdout()
	for _, path := range args {
		s, err := scenario.Load(path)
		if err != nil {
			return err
		}

		results, runErr := runner.Run(s)
		fmt.Fprintf(out, "== %s\n", s.Name)
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tOP\tLEN\tCAP\tCONTENTS\tRESULT")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%v\t%s\n", r.Step, r.Desc, r.Len, r.Cap, r.Contents, outcome(r))
		}
		w.Flush()

		if runErr != nil {
			logger.Error("scenario failed", zap.String("scenario", s.Name), zap.Error(runErr))
			return fmt.Errorf("%s: %w", s.Name, runErr)
		}
	}
	return nil
}

func validateScenarios(cmd *cobra.Command, args []string) error {
	var failed []string
	for _, path := range args {
		s, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			failed = append(failed, path)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps)\n", s.Name, len(s.Steps))
	}
	if len(failed) > 0 {
		return fmt.Errorf("invalid scenarios: %s", strings.Join(failed, ", "))
	}
	return nil
}

func outcome(r scenario.Result) string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case r.Value != nil:
		return fmt.Sprintf("= %d", *r.Value)
	}
	return "ok"
}
