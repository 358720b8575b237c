package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// SplitBlobURL separates a blob URL into the URL of its bucket and the object
// key.  Query parameters stay with the bucket so driver options like region
// reach the opener.  For file URLs the parent directory is the bucket.
func SplitBlobURL(name string) (string, string, error) {
	u, err := url.Parse(name)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse %q: %w", name, err)
	}
	if u.Scheme == "" || (u.Scheme != "file" && u.Host == "") {
		return "", "", fmt.Errorf("expected a name in the form <scheme>://<bucket>/<key>, got %q", name)
	}

	if u.Scheme == "file" {
		dir, key := path.Split(u.Path)
		bucket := &url.URL{Scheme: u.Scheme, Path: strings.TrimSuffix(dir, "/"), RawQuery: u.RawQuery}
		return bucket.String(), key, nil
	}

	bucket := &url.URL{Scheme: u.Scheme, Host: u.Host, RawQuery: u.RawQuery}
	return bucket.String(), strings.TrimPrefix(u.Path, "/"), nil
}

func openBucket(ctx context.Context, name string) (*blob.Bucket, string, error) {
	bucketURL, key, err := SplitBlobURL(name)
	if err != nil {
		return nil, "", err
	}
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open bucket %s, %w", bucketURL, err)
	}
	return bucket, key, nil
}

func closeBucket(bucket *blob.Bucket) error {
	if err := bucket.Close(); err != nil {
		if gcerrors.Code(err) == gcerrors.FailedPrecondition {
			// allow mutiple calls to Close
			return nil
		}
		return err
	}
	return nil
}

// Download writes the object named by a blob URL to w.
func Download(ctx context.Context, name string, w io.Writer) error {
	bucket, key, err := openBucket(ctx, name)
	if err != nil {
		return err
	}
	defer func() { _ = closeBucket(bucket) }()

	if err := bucket.Download(ctx, key, w, nil); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return fmt.Errorf("no object found at %s: %w", name, err)
		}
		return fmt.Errorf("failed to download %s, %w", name, err)
	}
	return nil
}

// DefaultContentType is used for uploads with an unknown extension.
const DefaultContentType = "application/octet-stream"

// ContentType guesses the media type of a file from its extension.
func ContentType(name string) string {
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		return contentType
	}
	return DefaultContentType
}

// WriterOptionsFunc returns the options used to upload the file at the given
// slash separated path relative to the uploaded directory.
type WriterOptionsFunc func(relPath string) *blob.WriterOptions

// UploadDir uploads every regular file under dir to the bucket named by the
// blob URL, using the URL path as a key prefix.  Files whose options leave
// the content type empty get one from ContentType.  It returns the number of
// objects written.
func UploadDir(ctx context.Context, dir string, name string, options WriterOptionsFunc) (int, error) {
	bucket, prefix, err := openBucket(ctx, name)
	if err != nil {
		return 0, err
	}

	count := 0
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		key := path.Join(prefix, rel)

		opts := &blob.WriterOptions{}
		if options != nil {
			if o := options(rel); o != nil {
				opts = o
			}
		}
		if opts.ContentType == "" {
			opts.ContentType = ContentType(rel)
		}
		if err := uploadFile(ctx, bucket, key, p, opts); err != nil {
			return fmt.Errorf("failed to upload %s to %s, %w", p, key, err)
		}
		count += 1
		return nil
	})
	closeErr := closeBucket(bucket)
	if walkErr != nil {
		return count, walkErr
	}
	return count, closeErr
}

func uploadFile(ctx context.Context, bucket *blob.Bucket, key string, name string, opts *blob.WriterOptions) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return bucket.Upload(ctx, key, file, opts)
}
