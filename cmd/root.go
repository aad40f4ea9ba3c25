package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"llmcontext/pkg/config"
	"llmcontext/pkg/filelock"
	"llmcontext/pkg/ignore"
	"llmcontext/pkg/logging"
	"llmcontext/pkg/scan"
	"llmcontext/pkg/version"
)

const appName = "llmcontext"

// globalIgnoreEnv names the environment variable consulted for a global
// ignore file when neither the flag nor the configuration file sets one.
const globalIgnoreEnv = "LLMCONTEXT_GLOBAL_IGNORE"

// Execute builds the root command and runs it.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}

// NewRootCmd constructs the llmcontext root command with all flags and
// subcommands attached.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmcontext [directories...]",
		Short: "Aggregate directory trees into a single document for LLM context",
		Long: `llmcontext recursively scans one or more directories, reads every text file
that survives the tree's .gitignore and .llmignore rules, and combines the
results into a single document with one header block per file.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", config.DefaultOutputFile, "Output document path")
	flags.BoolP("verbose", "v", false, "Enable verbose diagnostics")
	flags.String("config", config.DefaultFileName, "Configuration file path")
	flags.StringSlice("ignore", nil, "Extra ignore patterns, highest precedence")
	flags.String("global-ignore", "", "Ignore file applied to every directory")
	flags.Int("max-file-size", 0, "Per-file size cap in KB (0 = unlimited)")
	flags.Int("max-workers", 0, "Concurrent file readers (0 = one per CPU)")
	flags.String("tree", "", "Also write a directory tree listing to this path")

	cmd.AddCommand(NewVersionCmd())
	return cmd
}

// runSettings are the effective options after merging the configuration file
// with explicitly set flags.
type runSettings struct {
	Output        string
	Verbose       bool
	GlobalIgnore  string
	ExtraPatterns []string
	MaxFileSizeKB int
	MaxWorkers    int
	TreePath      string
}

// resolveSettings merges the configuration file into the flag set. Values
// from the file seed viper defaults, so flags explicitly set on the command
// line always win.
func resolveSettings(cmd *cobra.Command) (*runSettings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("output", cfg.Output)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("max-file-size", cfg.MaxFileSizeKB)
	v.SetDefault("max-workers", cfg.MaxWorkers)
	v.SetDefault("global-ignore", cfg.GlobalIgnore)
	for _, name := range []string{"output", "verbose", "max-file-size", "max-workers", "global-ignore", "tree"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind %s flag: %w", name, err)
		}
	}

	extraPatterns, err := cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	settings := &runSettings{
		Output:        v.GetString("output"),
		Verbose:       v.GetBool("verbose"),
		GlobalIgnore:  v.GetString("global-ignore"),
		ExtraPatterns: append(append([]string{}, cfg.Ignore...), extraPatterns...),
		MaxFileSizeKB: v.GetInt("max-file-size"),
		MaxWorkers:    v.GetInt("max-workers"),
		TreePath:      v.GetString("tree"),
	}
	if settings.GlobalIgnore == "" {
		settings.GlobalIgnore = os.Getenv(globalIgnoreEnv)
	}
	return settings, nil
}

func run(cmd *cobra.Command, args []string, logger *zap.Logger) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if settings.Verbose {
		if verboseLogger, err := logging.Setup(true, appName, version.Get().Version); err == nil {
			logger = verboseLogger
		}
	}
	logger = logger.With(zap.String("runID", uuid.New().String()))

	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}
	outputPath, err := filepath.Abs(settings.Output)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	treePath := ""
	if settings.TreePath != "" {
		if treePath, err = filepath.Abs(settings.TreePath); err != nil {
			return fmt.Errorf("failed to resolve tree path: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		green.DisableColor()
		yellow.DisableColor()
	}

	if len(roots) == 1 {
		fmt.Fprintf(out, "Scanning directory: %s\n", roots[0])
	} else {
		fmt.Fprintf(out, "Scanning %d directories: %s\n", len(roots), strings.Join(roots, ", "))
	}
	if _, err := os.Stat(outputPath); err == nil {
		yellow.Fprintf(out, "Warning: Output file '%s' already exists. It will be overwritten.\n", outputPath)
	}

	logger.Info("Starting scan",
		zap.Strings("roots", roots),
		zap.String("output", outputPath))

	fsys := afero.NewOsFs()
	scanner := scan.NewScanner(fsys, scan.Options{
		MaxFileSizeKB: settings.MaxFileSizeKB,
		MaxWorkers:    settings.MaxWorkers,
		ExcludePaths:  excludePaths(outputPath, outputPath+".lock", treePath),
	}, logger)

	outputs := make([]scan.RootOutput, 0, len(roots))
	var treeBuilder strings.Builder
	for _, root := range roots {
		rootLogger := logger.With(zap.String("root", root))
		matcher, err := ignore.CompileTree(fsys, root, ignore.CompileOptions{
			GlobalFile:    settings.GlobalIgnore,
			ExtraPatterns: settings.ExtraPatterns,
		}, rootLogger)
		if err != nil {
			return fmt.Errorf("failed to resolve ignore rules for %s: %w", root, err)
		}

		files, err := scanner.Scan(root, matcher)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", root, err)
		}
		rootLogger.Debug("Scanned root", zap.Int("fileCount", len(files)))
		outputs = append(outputs, scan.RootOutput{Root: root, Files: files})

		if treePath != "" {
			tree, err := scanner.RenderTree(root, matcher)
			if err != nil {
				return fmt.Errorf("failed to render tree for %s: %w", root, err)
			}
			treeBuilder.WriteString(tree)
		}
	}

	if err := scan.WriteDocument(outputPath, outputs, logger); err != nil {
		return err
	}
	if treePath != "" {
		if err := filelock.AtomicWrite(treePath, []byte(treeBuilder.String())); err != nil {
			return fmt.Errorf("failed to write tree file: %w", err)
		}
	}

	totalFiles := 0
	for _, output := range outputs {
		totalFiles += len(output.Files)
	}
	logger.Info("Scan completed",
		zap.Int("directories", len(roots)),
		zap.Int("totalFiles", totalFiles))

	if len(roots) == 1 {
		green.Fprintf(out, "Successfully processed directory. Output written to %s\n", outputPath)
	} else {
		green.Fprintf(out, "Successfully processed %d directories. Output written to %s\n", len(roots), outputPath)
	}
	return nil
}

// resolveRoots turns the positional arguments into absolute directories,
// defaulting to the current working directory. Every root must exist and be
// a directory; otherwise the run fails before any output is produced.
func resolveRoots(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	roots := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve directory %s: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("directory %s is not accessible: %w", arg, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", abs)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

// excludePaths drops empty entries so unset optional paths never exclude
// anything.
func excludePaths(paths ...string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
