package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goliatone/go-cardkit/pkg/loader"
)

const remoteTimeout = 30 * time.Second

// loadDocument reads location, which is a file path, an http(s) URL, or "-"
// for stdin.
func loadDocument(ctx context.Context, in io.Reader, location string) (loader.Document, error) {
	if location == "-" {
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return loader.Document{}, fmt.Errorf("read stdin: %w", err)
		}
		return loader.NewDocument(loader.FromFile("stdin"), data)
	}
	src, err := loader.Resolve(location)
	if err != nil {
		return loader.Document{}, err
	}
	return loader.New(loader.WithHTTPFallback(remoteTimeout)).Load(ctx, src)
}

// writeOutput writes data to path, or to out when path is empty.
func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
