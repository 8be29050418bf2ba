package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/Konsultn-Engineering/enquery/classifier"
	_ "github.com/Konsultn-Engineering/enquery/providers/mysql"
	_ "github.com/Konsultn-Engineering/enquery/providers/postgres"
	_ "github.com/Konsultn-Engineering/enquery/providers/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath     string
	verbose        bool
	params         map[string]string
	classifierName string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "enquery",
	Short: "Run SQL and custom query templates against a database",
	Long: `enquery sends standard SQL statements to the configured database and
routes everything else to the custom query templates listed in the config
file. A template such as

  pattern: "Get title: %c"
  sql: "SELECT title FROM posts WHERE id = :arg1"

turns "Get title: 2" into a lookup of post 2.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run a SQL statement or custom query and print the result as JSON",
	Example: `  enquery run "SELECT title FROM posts WHERE id = :id" --param id=2
  enquery run "Value of description for post: BlogPad"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the registered custom query templates",
	Args:  cobra.NoArgs,
	RunE:  listTemplates,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [query]",
	Short: "Show how a query would be routed without running it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  classifyQuery,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "enquery.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().StringToStringVarP(&params, "param", "p", nil, "named placeholder value (name=value)")
	classifyCmd.Flags().StringVar(&classifierName, "classifier", "", "classifier to use instead of the configured one")

	rootCmd.AddCommand(runCmd, templatesCmd, classifyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	e, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	named := make(map[string]any, len(params))
	for k, v := range params {
		named[k] = v
	}

	out, err := e.Run(cmd.Context(), strings.Join(args, " "), named)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func listTemplates(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	e, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWILDCARDS\tPATTERN")
	for _, t := range e.Registry().Templates() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.ID, t.Wildcards, t.Text)
	}
	return w.Flush()
}

func classifyQuery(cmd *cobra.Command, args []string) error {
	name := classifierName
	if name == "" {
		if cfg, err := loadAppConfig(configPath); err == nil {
			name = cfg.Classifier
		}
	}

	cl, err := classifier.New(name)
	if err != nil {
		return err
	}
	res := cl.Classify(strings.Join(args, " "))
	if res.Action != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Kind, res.Action)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Kind)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
