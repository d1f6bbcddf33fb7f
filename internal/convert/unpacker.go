package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ambient-portfolio/internal/utils"
)

// PkgEntry is one file inside a gallery bundle.
type PkgEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

const maxPkgString = 1 << 16

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("bundle string of %d bytes is too long", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkgIndex reads the bundle header and file table. Offsets are relative
// to the end of the table, which is returned as dataStart.
func ReadPkgIndex(r io.ReadSeeker) (version string, entries []PkgEntry, dataStart int64, err error) {
	version, err = readPkgString(r)
	if err != nil {
		return "", nil, 0, fmt.Errorf("failed to read bundle version: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return "", nil, 0, fmt.Errorf("failed to read bundle file count: %w", err)
	}

	for i := uint32(0); i < count; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return "", nil, 0, fmt.Errorf("failed to read bundle entry %d: %w", i, err)
		}
		var loc [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &loc); err != nil {
			return "", nil, 0, fmt.Errorf("failed to read bundle entry %s: %w", name, err)
		}
		entries = append(entries, PkgEntry{Name: name, Offset: loc[0], Size: loc[1]})
	}

	dataStart, err = r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", nil, 0, err
	}
	return version, entries, dataStart, nil
}

// ExtractPkg unpacks a gallery bundle into outputDir and returns the paths it
// wrote. Entries that would escape outputDir are rejected.
func ExtractPkg(pkgPath, outputDir string) ([]string, error) {
	utils.Debug("Opening gallery bundle %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	version, entries, dataStart, err := ReadPkgIndex(f)
	if err != nil {
		return nil, err
	}
	utils.Debug("Bundle %s: version %s, %d files", filepath.Base(pkgPath), version, len(entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(entries))
	for _, entry := range entries {
		dest := filepath.Join(root, filepath.FromSlash(entry.Name))
		if dest != root && !strings.HasPrefix(dest, root+string(filepath.Separator)) {
			return written, fmt.Errorf("bundle entry %q escapes the output directory", entry.Name)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return written, err
		}
		if _, err := f.Seek(dataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return written, err
		}

		out, err := os.Create(dest)
		if err != nil {
			return written, err
		}
		_, err = io.CopyN(out, f, int64(entry.Size))
		closeErr := out.Close()
		if err != nil {
			return written, fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
		if closeErr != nil {
			return written, closeErr
		}
		written = append(written, dest)
	}

	utils.Debug("Extracted %d files from %s", len(written), pkgPath)
	return written, nil
}
