package transfer

import (
	"context"
	"io"
	"net/http"
	"path"

	"github.com/azavea/tilertwo/internal/location"
	"github.com/azavea/tilertwo/internal/storage"
	"gocloud.dev/blob"
)

// HTTPImporter downloads a file with a GET request.
type HTTPImporter struct {
	Client *http.Client
}

func (h *HTTPImporter) Import(ctx context.Context, source location.Location, dest string) error {
	return writeFile(dest, func(w io.Writer) error {
		_, err := storage.Fetch(ctx, h.Client, source.Raw, w)
		return err
	})
}

// BlobImporter downloads an object from a bucket.
type BlobImporter struct{}

func (*BlobImporter) Import(ctx context.Context, source location.Location, dest string) error {
	return writeFile(dest, func(w io.Writer) error {
		return storage.Download(ctx, source.Raw, w)
	})
}

// BlobExporter uploads a directory of tiles to a bucket under the
// destination key prefix.  Objects are publicly readable.
type BlobExporter struct{}

func (*BlobExporter) Export(ctx context.Context, sourceDir string, dest location.Location) error {
	_, err := storage.UploadDir(ctx, sourceDir, dest.Raw, TileWriterOptions)
	return err
}

const (
	VectorTileContentType = "application/x-protobuf"
	JSONContentType       = "application/json"
)

// TileWriterOptions returns upload options for a file in an extracted tile
// tree.  Vector tiles written by tippecanoe are gzipped, so they are served
// with a gzip content encoding.
func TileWriterOptions(relPath string) *blob.WriterOptions {
	opts := &blob.WriterOptions{BeforeWrite: storage.PublicRead}
	switch path.Ext(relPath) {
	case ".pbf":
		opts.ContentType = VectorTileContentType
		opts.ContentEncoding = "gzip"
	case ".json":
		opts.ContentType = JSONContentType
	default:
		opts.ContentType = storage.ContentType(relPath)
	}
	return opts
}
