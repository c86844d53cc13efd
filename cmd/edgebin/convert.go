package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/edgebin/internal/convert"
	"github.com/alfredjeanlab/edgebin/internal/edge"
	"github.com/alfredjeanlab/edgebin/internal/events"
	"github.com/alfredjeanlab/edgebin/internal/ledger/postgres"
	"github.com/alfredjeanlab/edgebin/internal/ui"
	"github.com/alfredjeanlab/edgebin/internal/upload"
)

var convertCmd = &cobra.Command{
	Use:   "convert [path]",
	Short: "Convert a text edge list to binary records",
	Long: `Convert a text edge list to a file of fixed 8-byte records.

Each non-comment line of the input must hold exactly two whitespace-separated
integers that fit in 32 bits. Lines starting with "#" are skipped. The output
is written next to the input with its extension replaced by ".bin".

When no path is given it is read from standard input.`,
	GroupID: "convert",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) == 1 {
			input = args[0]
		} else {
			in := cmd.InOrStdin()
			f, ok := in.(*os.File)
			interactive := ok && ui.IsTerminal(f)
			var err error
			if input, err = readInputPath(in, cmd.ErrOrStderr(), interactive); err != nil {
				return err
			}
		}

		opts, err := converterOptions(cmd)
		if err != nil {
			return err
		}
		push, _ := cmd.Flags().GetBool("upload")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		runner, closeRunner, err := newRunner(ctx, convert.NewConverter(opts, logger), push)
		if err != nil {
			return err
		}
		defer closeRunner()

		run, err := runner.Run(ctx, input, push)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(cmd.OutOrStdout(), run)
		} else {
			printRunTable(cmd.OutOrStdout(), run)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().Bool("undirected", false, "order endpoints so src <= dst and drop duplicate edges")
	convertCmd.Flags().String("byte-order", "", "record byte order: native, little or big (default from config)")
	convertCmd.Flags().String("extension", "", "output extension (default from config)")
	convertCmd.Flags().Bool("upload", false, "upload the output to the configured S3 bucket")
}

// readInputPath reads a single path line from r, prompting on w when
// interactive.
func readInputPath(r io.Reader, w io.Writer, interactive bool) (string, error) {
	if interactive {
		fmt.Fprint(w, "Input path: ")
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input path: %w", err)
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", convert.ErrEmptyPath
	}
	return path, nil
}

// converterOptions merges config values with explicitly set flags.
func converterOptions(cmd *cobra.Command) (convert.Options, error) {
	orderName := cfg.ByteOrder
	if cmd.Flags().Changed("byte-order") {
		orderName, _ = cmd.Flags().GetString("byte-order")
	}
	order, err := edge.ParseByteOrder(orderName)
	if err != nil {
		return convert.Options{}, err
	}

	opts := convert.Options{
		Extension:  cfg.Extension,
		ByteOrder:  order,
		Undirected: cfg.Undirected,
	}
	if cmd.Flags().Changed("extension") {
		opts.Extension, _ = cmd.Flags().GetString("extension")
	}
	if cmd.Flags().Changed("undirected") {
		opts.Undirected, _ = cmd.Flags().GetBool("undirected")
	}
	return opts, nil
}

// newRunner wires the configured integrations around conv. The ledger and
// event bus are optional and are skipped with a warning when unreachable;
// an upload destination is only built when push is requested.
func newRunner(ctx context.Context, conv *convert.Converter, push bool) (*convert.Runner, func(), error) {
	var (
		opts    []convert.RunnerOption
		closers []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close failed", "err", err)
			}
		}
	}

	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Warn("events disabled", "err", err)
		} else {
			opts = append(opts, convert.WithPublisher(pub))
			closers = append(closers, pub.Close)
			logger.Info("events enabled", "nats_url", cfg.Redacted().NATSURL)
		}
	}

	if cfg.DatabaseURL != "" {
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("run ledger disabled", "err", err)
		} else {
			opts = append(opts, convert.WithLedger(store))
			closers = append(closers, store.Close)
		}
	}

	if push {
		if cfg.S3Bucket == "" {
			closeAll()
			return nil, nil, fmt.Errorf("--upload requires EDGEBIN_S3_BUCKET or s3_bucket in the config file")
		}
		dest, err := upload.NewS3Destination(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opts = append(opts, convert.WithDestination(dest))
	}

	return convert.NewRunner(conv, logger, opts...), closeAll, nil
}
