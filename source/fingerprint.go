package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// fileFingerprint hashes the contents of every path together with the options,
// so an edited file or a different channel filter yields a new key.
func fileFingerprint(kind, productsPath, salesPath string, opts Options) (string, error) {
	d := xxhash.New()
	if err := hashFile(d, productsPath); err != nil {
		return "", &LoadError{Source: kind, Table: TableProducts, Path: productsPath, Err: err}
	}
	if err := hashFile(d, salesPath); err != nil {
		return "", &LoadError{Source: kind, Table: TableSales, Path: salesPath, Err: err}
	}
	_, _ = d.WriteString("channels=" + strings.Join(opts.Channels, ","))
	return fmt.Sprintf("%s:%016x", kind, d.Sum64()), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.WriteString(w, path+"\x00"); err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
