package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardkit/pkg/orchestrator"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/renderers/jsonrender"
	"github.com/goliatone/go-cardkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardkit/pkg/validation"
)

const (
	formatHTML = vanilla.Name
	formatJSON = jsonrender.Name
	formatYAML = "yaml"
)

type renderOpts struct {
	output          string   // output file, stdout when empty
	format          string   // html or json
	themeFiles      []string // theme manifests (YAML or JSON)
	themeName       string
	themeVariant    string
	title           string
	assetURL        string // link assets from this prefix instead of inlining
	showDiagnostics bool
	strict          bool
	validate        bool // run the schema pass as well as element validation
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatHTML}

	cmd := &cobra.Command{
		Use:   "render [file|url|-]",
		Short: "Render a card to an HTML page or canonical JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(strings.TrimSpace(opts.format))
			if opts.format != formatHTML && opts.format != formatJSON {
				return fmt.Errorf("unsupported format %q (want %s or %s)", opts.format, formatHTML, formatJSON)
			}
			return runRender(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: html or json")
	cmd.Flags().StringArrayVar(&opts.themeFiles, "theme-file", nil, "theme manifest file (repeatable)")
	cmd.Flags().StringVar(&opts.themeName, "theme", "", "theme name (defaults to the first theme file)")
	cmd.Flags().StringVar(&opts.themeVariant, "variant", "", "theme variant")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title (defaults to the card fallback text)")
	cmd.Flags().StringVar(&opts.assetURL, "asset-url", "", "link cardkit.css and the carousel script from this URL prefix")
	cmd.Flags().BoolVar(&opts.showDiagnostics, "show-diagnostics", false, "include parse and validation diagnostics in the output")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the card has errors")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check the card against the document schema")

	return cmd
}

func runRender(ctx context.Context, in io.Reader, out io.Writer, location string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := loadDocument(ctx, in, location)
	if err != nil {
		return err
	}

	htmlRenderer, err := vanilla.New(vanilla.WithAssetURL(opts.assetURL))
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(jsonrender.New())

	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithRegistry(registry),
		orchestrator.WithStrict(opts.strict),
	}
	if opts.validate {
		validator, err := validation.New(ctx, validation.WithLogger(logger))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithValidator(validator))
	}
	if len(opts.themeFiles) > 0 {
		selector, err := loadThemes(opts.themeFiles)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithThemeSelector(selector))
	}

	output, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:     &doc,
		Renderer:     opts.format,
		ThemeName:    opts.themeName,
		ThemeVariant: opts.themeVariant,
		RenderOptions: render.RenderOptions{
			Title:           opts.title,
			ShowDiagnostics: opts.showDiagnostics,
		},
	})
	if err != nil {
		return err
	}
	if err := writeOutput(out, opts.output, output); err != nil {
		return err
	}
	prog.done("rendered card", "source", doc.Location(), "format", opts.format)
	return nil
}

func loadThemes(paths []string) (*orchestrator.ManifestSelector, error) {
	selector, err := orchestrator.NewManifestSelector()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read theme %s: %w", path, err)
		}
		manifest, err := orchestrator.ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := selector.Register(manifest); err != nil {
			return nil, err
		}
	}
	return selector, nil
}
