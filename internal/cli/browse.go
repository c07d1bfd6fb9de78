package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/extensions"
	"github.com/goliatone/go-cardkit/pkg/renderers/tui"
)

type browseOpts struct {
	confirmQuit bool
	driver      tui.PromptDriver
}

func newBrowseCmd() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse [file|url|-]",
		Short: "Page through a card's carousels in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			return runBrowse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.confirmQuit, "confirm-quit", false, "ask before quitting")
	return cmd
}

func runBrowse(ctx context.Context, in io.Reader, out io.Writer, location string, opts browseOpts) error {
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
	parsed := card.ParseMap(raw, pctx)

	browser := tui.New(
		tui.WithPromptDriver(opts.driver),
		tui.WithLogger(logger),
		tui.WithConfirmQuit(opts.confirmQuit),
	)
	state, err := browser.Run(ctx, parsed)
	switch {
	case errors.Is(err, tui.ErrNoCarousel):
		logger.Info("card has no carousel", "source", doc.Location())
	case errors.Is(err, tui.ErrAborted):
		logger.Debug("browse aborted")
	case err != nil:
		return err
	}

	if state != nil {
		for _, action := range state.Activated() {
			fmt.Fprintf(out, "activated %s %q\n", action.TypeName(), action.Title())
		}
	}
	return nil
}
