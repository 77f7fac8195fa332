// Package emit writes packed bin results to the plaintext "Bin-<k>.txt"
// format: a placed-count header followed by one line per placed piece
// giving its id, rotation, and placed position.
package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"polynest/internal/bin"
)

// WriteBin writes one bin's result to w: a placed-count header line
// followed by one "<id> <rotation> <x>,<y>" line per placed piece, where
// (x, y) is the min-corner of the piece's placed bbox.
func WriteBin(w io.Writer, b *bin.Bin) error {
	if _, err := fmt.Fprintf(w, "%d\n", b.NPlaced()); err != nil {
		return fmt.Errorf("emit: writing header: %w", err)
	}
	for _, piece := range b.Placed() {
		bb := piece.BBox()
		if _, err := fmt.Fprintf(w, "%d %g %g,%g\n", piece.ID(), piece.Rotation(), bb.Min.X, bb.Min.Y); err != nil {
			return fmt.Errorf("emit: writing piece %d: %w", piece.ID(), err)
		}
	}
	return nil
}

// WriteBinFiles writes each bin in bins to "<dir>/Bin-<k>.txt", 1-indexed
// as the output format requires, creating dir if it does not already
// exist.
func WriteBinFiles(dir string, bins []*bin.Bin) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("emit: creating output directory %s: %w", dir, err)
	}
	for k, b := range bins {
		path := filepath.Join(dir, fmt.Sprintf("Bin-%d.txt", k+1))
		if err := writeFile(path, b); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, b *bin.Bin) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("emit: creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteBin(f, b)
}
