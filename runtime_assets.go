package cardkit

import (
	"io/fs"

	"github.com/goliatone/go-cardkit/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and carousel runtime script used by
// exported pages, so Go applications can serve them next to pages rendered
// with vanilla.WithAssetURL.
//
// Typical mount:
//
//	mux.Handle("/cardkit/",
//	  http.StripPrefix("/cardkit/",
//	    http.FileServerFS(cardkit.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
