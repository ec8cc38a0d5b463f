package snapshot

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/orgacl/aclview/pkg/ioutilx"
	"github.com/orgacl/aclview/pkg/logx"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileSource reads a snapshot document from a file, or from the flag value
// itself. The file is read again on every Load.
type FileSource struct {
	value  ioutilx.FileOrString
	format Format

	statter ioutilx.Statter
	reader  ioutilx.FileReader
}

func NewFileSource(value ioutilx.FileOrString, format Format) *FileSource {
	return &FileSource{
		value:   value,
		format:  format,
		statter: ioutilx.OS,
		reader:  ioutilx.IOReader,
	}
}

func (s *FileSource) Load(ctx context.Context, logger logx.Logger) (Snapshot, error) {
	logger = logger.WithName("file-source")
	logger.Debug(starting)
	defer logger.Debug(finished)

	b, err := s.value.Bytes(s.statter, s.reader)
	if err != nil {
		logger.Error(failedToReadSnapshot, err)
		return Snapshot{}, err
	}

	snapshot, err := Decode(b, s.detectFormat(b))
	if err != nil {
		logger.Error(failedToDecodeSnapshot, err)
		return Snapshot{}, err
	}

	if err = Validate(snapshot); err != nil {
		logger.Error(failedToValidateSnapshot, err)
		return Snapshot{}, err
	}

	return snapshot, nil
}

func (s *FileSource) detectFormat(b []byte) Format {
	if s.format != FormatAuto {
		return s.format
	}

	switch s.value.Extension(s.statter) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}

	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}

	return FormatYAML
}

func Decode(b []byte, format Format) (Snapshot, error) {
	var snapshot Snapshot

	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(b))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&snapshot); err != nil {
			return Snapshot{}, err
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(b))
		decoder.KnownFields(true)
		if err := decoder.Decode(&snapshot); err != nil {
			return Snapshot{}, err
		}
	default:
		return Snapshot{}, ErrUnsupportedFormat
	}

	return snapshot, nil
}
