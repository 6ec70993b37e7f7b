package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/classflow/model"
)

// ErrUnknownFormat is returned for file extensions and format names that
// have no codec.
var ErrUnknownFormat = errors.New("codec: unknown format")

// Format is a serialization format.
type Format string

// Supported formats.
const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

var extensions = map[string]Format{
	".json":    JSON,
	".yaml":    YAML,
	".yml":     YAML,
	".msgpack": MsgPack,
	".mp":      MsgPack,
}

// FormatOf returns the format of a file path by its extension.
func FormatOf(path string) (Format, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: extension of %q", ErrUnknownFormat, path)
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case JSON, YAML, MsgPack:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Ext returns the preferred file extension of the format.
func (f Format) Ext() string {
	switch f {
	case YAML:
		return ".yaml"
	case MsgPack:
		return ".msgpack"
	default:
		return ".json"
	}
}

// Encode writes d to w in format f.
func Encode(w io.Writer, f Format, d model.Diagram) error {
	var err error
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	case MsgPack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		err = enc.Encode(d)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", f, err)
	}
	return nil
}

// Decode reads a diagram in format f from r and validates it.
func Decode(r io.Reader, f Format) (model.Diagram, error) {
	var (
		d   model.Diagram
		err error
	)
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&d)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&d)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case MsgPack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		err = dec.Decode(&d)
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return model.Diagram{}, fmt.Errorf("codec: decode %s: %w", f, err)
	}
	if err := d.Validate(); err != nil {
		return model.Diagram{}, fmt.Errorf("codec: invalid diagram: %w", err)
	}
	return d, nil
}

// Marshal returns the encoding of d in format f.
func Marshal(f Format, d model.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a diagram in format f.
func Unmarshal(f Format, data []byte) (model.Diagram, error) {
	return Decode(bytes.NewReader(data), f)
}

// ReadFile reads the diagram stored at path, in the format of its
// extension.
func ReadFile(path string) (model.Diagram, error) {
	f, err := FormatOf(path)
	if err != nil {
		return model.Diagram{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Diagram{}, fmt.Errorf("codec: %w", err)
	}
	return Unmarshal(f, data)
}

// WriteFile stores d at path, in the format of its extension. The file is
// replaced atomically.
func WriteFile(path string, d model.Diagram) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(f, d)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	return nil
}
