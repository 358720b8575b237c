package transfer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/azavea/tilertwo/internal/location"
)

// LocalImporter copies a file from the local filesystem.
type LocalImporter struct{}

func (*LocalImporter) Import(ctx context.Context, source location.Location, dest string) error {
	input, err := os.Open(source.Path)
	if err != nil {
		return fmt.Errorf("failed to read from %q: %w", source.Path, err)
	}
	defer input.Close()

	return writeFile(dest, func(w io.Writer) error {
		_, err := io.Copy(w, input)
		return err
	})
}

// LocalExporter recursively copies a directory into the destination path.
// The destination is created if needed and existing files are overwritten.
type LocalExporter struct{}

func (*LocalExporter) Export(ctx context.Context, sourceDir string, dest location.Location) error {
	return copyDir(ctx, sourceDir, dest.Path)
}

// writeFile creates dest and fills it with write.  On failure the partial
// file is removed.
func writeFile(dest string, write func(io.Writer) error) (err error) {
	output, createErr := os.Create(dest)
	if createErr != nil {
		return fmt.Errorf("failed to open %q for writing: %w", dest, createErr)
	}
	defer func() {
		if closeErr := output.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %q: %w", dest, closeErr)
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	return write(output)
}

func copyDir(ctx context.Context, sourceDir string, destDir string) error {
	return filepath.WalkDir(sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, p)
		if err != nil {
			return err
		}
		target := filepath.Join(destDir, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(p, target)
	})
}

func copyFile(source string, target string) error {
	input, err := os.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(output, input); err != nil {
		_ = output.Close()
		return fmt.Errorf("failed to copy %q to %q: %w", source, target, err)
	}
	return output.Close()
}
