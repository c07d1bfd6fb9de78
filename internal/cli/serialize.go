package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/extensions"
)

type serializeOpts struct {
	output string
	format string
}

func newSerializeCmd() *cobra.Command {
	opts := serializeOpts{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "serialize [file|url|-]",
		Short: "Parse a card and print its canonical form",
		Long:  `serialize parses a card and prints what the parser kept: unknown elements are dropped and default values omitted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(strings.TrimSpace(opts.format))
			if opts.format != formatJSON && opts.format != formatYAML {
				return fmt.Errorf("unsupported format %q (want %s or %s)", opts.format, formatJSON, formatYAML)
			}
			return runSerialize(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json or yaml")
	return cmd
}

func runSerialize(ctx context.Context, in io.Reader, out io.Writer, location string, opts serializeOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := loadDocument(ctx, in, location)
	if err != nil {
		return err
	}
	raw, err := doc.Decode()
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Location(), err)
	}
	pctx := card.NewParseContext(extensions.NewRegistry(extensions.WithLogger(logger)), card.WithParseLogger(logger))
	serialized := card.ParseMap(raw, pctx).Serialize()

	var data []byte
	switch opts.format {
	case formatYAML:
		data, err = yaml.Marshal(serialized)
	default:
		data, err = json.MarshalIndent(serialized, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", opts.format, err)
	}
	return writeOutput(out, opts.output, data)
}
