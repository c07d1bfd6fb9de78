package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardkit/pkg/validation"
)

type validateOpts struct {
	json bool
}

func newValidateCmd() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [file|url|-]",
		Short: "Validate a card against the document schema and element rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	return cmd
}

func runValidate(ctx context.Context, in io.Reader, out io.Writer, location string, opts validateOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := loadDocument(ctx, in, location)
	if err != nil {
		return err
	}
	validator, err := validation.New(ctx, validation.WithLogger(logger))
	if err != nil {
		return err
	}
	result, err := validator.ValidateBytes(ctx, doc.Raw())
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Location(), err)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		for _, issue := range result.Issues {
			path := issue.Path
			if path == "" {
				path = "/"
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t(%s)\n", issue.Severity, path, issue.Message, issue.Source)
		}
		if result.Valid {
			fmt.Fprintf(out, "%s: valid\n", doc.Location())
		}
	}

	if !result.Valid {
		return fmt.Errorf("%s: invalid card (%d issue(s))", doc.Location(), len(result.Issues))
	}
	return nil
}
