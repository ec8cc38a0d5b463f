package ioutilx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	OS       = InjectableOS{}
	IOReader = InjectableIOReader{}
)

// FileOrString is a flag value holding either a path to a file or the
// content itself, with escaped newlines.
type FileOrString string

func (f FileOrString) Bytes(statter Statter, reader FileReader) ([]byte, error) {
	value := string(f)
	stat, err := statter.Stat(value)
	if err != nil {
		return []byte(strings.Replace(value, "\\n", "\n", -1)), nil
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path '%s' is a directory, not a file", value)
	}

	return reader.ReadFile(value)
}

// Extension returns the lowercased file extension when the value names an
// existing file, and "" for inline content.
func (f FileOrString) Extension(statter Statter) string {
	value := string(f)
	if _, err := statter.Stat(value); err != nil {
		return ""
	}

	return strings.ToLower(filepath.Ext(value))
}

type FileReader interface {
	ReadFile(string) ([]byte, error)
}

type InjectableIOReader struct{}

func (InjectableIOReader) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

type Statter interface {
	Stat(string) (os.FileInfo, error)
}

type InjectableOS struct{}

func (InjectableOS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
