package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/serialization"
)

// cli holds state shared by all subcommands of one invocation.
type cli struct {
	configPath string
	logLevel   string
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:           "ndarray",
		Short:         "Inspect, generate and store N-dimensional numeric arrays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newVersionCmd(),
		c.newInspectCmd(),
		c.newArangeCmd(),
		c.newLinspaceCmd(),
		c.newSaveCmd(),
		c.newLoadCmd(),
	)
	return root
}

// setup loads config, installs the parallel settings and builds the logger.
func (c *cli) setup(stderr io.Writer) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		if _, err := config.ParseLevel(c.logLevel); err != nil {
			return err
		}
		cfg.Log.Level = c.logLevel
	}

	array.SetParallelConfig(cfg.ParallelSettings())
	c.logger = cfg.NewLogger(stderr)
	c.logger.Debug("config loaded",
		"path", c.configPath,
		"parallel", cfg.Parallel.Enabled,
		"workers", cfg.Parallel.NumWorkers)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ndarray %s\n", version)
		},
	}
}

func (c *cli) newInspectCmd() *cobra.Command {
	var indices []int
	cmd := &cobra.Command{
		Use:   "inspect <json-literal | @file>",
		Short: "Ingest a nested JSON array and print its shape, dtype and data",
		Example: `  ndarray inspect '[[1, 2], [3, 4]]'
  ndarray inspect '[[1.0, 2.0], [3.0, 4.0]]' --index 1,0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			literal, err := readLiteral(args[0])
			if err != nil {
				return err
			}
			a, err := parseLiteral(literal)
			if err != nil {
				return err
			}
			c.logger.Debug("ingested literal", "shape", a.Shape(), "dtype", a.DType())

			if cmd.Flags().Changed("index") {
				v, err := a.Get(indices...)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), v)
			}
			return printArray(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().IntSliceVar(&indices, "index", nil, "comma-separated indices to select")
	return cmd
}

func (c *cli) newArangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arange <stop> | <start> <stop> [step]",
		Short: "Print the integers in [start, stop) with the given step",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]array.Number, len(args))
			for i, s := range args {
				n, err := parseNumber(s)
				if err != nil {
					return err
				}
				nums[i] = n
			}

			var a *array.Array
			switch len(nums) {
			case 1:
				a = array.Arange(nums[0])
			case 2:
				a = array.ArangeRange(nums[0], nums[1], 1)
			default:
				a = array.ArangeRange(nums[0], nums[1], int(nums[2].Int64()))
			}
			return printArray(cmd.OutOrStdout(), a)
		},
	}
}

func (c *cli) newLinspaceCmd() *cobra.Command {
	var (
		num      int
		endpoint bool
	)
	cmd := &cobra.Command{
		Use:   "linspace <start> <end>",
		Short: "Print evenly spaced samples between start and end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			end, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			a := array.Linspace(start, end, array.WithNum(num), array.WithEndpoint(endpoint))
			return printArray(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().IntVar(&num, "num", array.DefaultLinspaceNum, "number of samples")
	cmd.Flags().BoolVar(&endpoint, "endpoint", false, "include end as the last sample")
	return cmd
}

func (c *cli) newSaveCmd() *cobra.Command {
	var meta []string
	cmd := &cobra.Command{
		Use:     "save <file> <name>=<json-literal | @file>...",
		Short:   "Ingest literals and write them to a SafeTensors file",
		Example: `  ndarray save arrays.safetensors x='[[1, 2], [3, 4]]' y='[0.5, 1.5]'`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arrays := make(map[string]*array.Array, len(args)-1)
			for _, arg := range args[1:] {
				name, src, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected name=literal, got %q", arg)
				}
				literal, err := readLiteral(src)
				if err != nil {
					return err
				}
				a, err := parseLiteral(literal)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				arrays[name] = a
			}

			metadata := map[string]string{}
			for _, kv := range meta {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("expected key=value metadata, got %q", kv)
				}
				metadata[k] = v
			}

			if err := serialization.WriteFile(args[0], arrays, metadata, serialization.Options{Logger: c.logger}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d arrays to %s\n", len(arrays), args[0])
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&meta, "meta", nil, "key=value metadata entries")
	return cmd
}

func (c *cli) newLoadCmd() *cobra.Command {
	var skipChecksum bool
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Print every array stored in a SafeTensors file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arrays, meta, err := serialization.ReadFile(args[0], serialization.Options{
				SkipChecksum: skipChecksum,
				Logger:       c.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range sortedKeys(meta) {
				fmt.Fprintf(out, "# %s=%s\n", k, meta[k])
			}
			for _, name := range sortedKeys(arrays) {
				fmt.Fprintf(out, "%s: ", name)
				if err := printArray(out, arrays[name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipChecksum, "skip-checksum", false, "do not verify the stored checksum")
	return cmd
}

// readLiteral returns src itself, or the contents of the file when src starts with '@'.
func readLiteral(src string) (string, error) {
	path, ok := strings.CutPrefix(src, "@")
	if !ok {
		return src, nil
	}
	//nolint:gosec // G304: path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read literal: %w", err)
	}
	return string(data), nil
}
