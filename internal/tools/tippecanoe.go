package tools

import "context"

// Tippecanoe builds a tile archive from a GeoJSON file.
type Tippecanoe struct {
	Binary  string
	Options []string
}

func (t *Tippecanoe) binary() string {
	if t.Binary == "" {
		return DefaultTippecanoe
	}
	return t.Binary
}

// Args returns `-o <archive> <options...> <input>`.
func (t *Tippecanoe) Args(archive string, input string) []string {
	args := make([]string, 0, len(t.Options)+3)
	args = append(args, "-o", archive)
	args = append(args, t.Options...)
	return append(args, input)
}

func (t *Tippecanoe) Run(ctx context.Context, runner Runner, archive string, input string) error {
	return runner.Run(ctx, t.binary(), t.Args(archive, input)...)
}

// MBUtil extracts the tiles in an archive into a z/x/y directory tree.
type MBUtil struct {
	Binary string
	Silent bool
}

func (m *MBUtil) binary() string {
	if m.Binary == "" {
		return DefaultMBUtil
	}
	return m.Binary
}

func (m *MBUtil) Args(archive string, outputDir string) []string {
	args := []string{"--image_format=pbf"}
	if m.Silent {
		args = append(args, "--silent")
	}
	return append(args, archive, outputDir)
}

func (m *MBUtil) Run(ctx context.Context, runner Runner, archive string, outputDir string) error {
	return runner.Run(ctx, m.binary(), m.Args(archive, outputDir)...)
}
