package encoding

import (
	"gopkg.in/yaml.v2"
	"io"
)

// default YAML encoder for BlobEngine. Blobs are written as data-URL strings through
// their TextMarshaler implementation.
type yamlEncoder struct{}

func (encoder *yamlEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	yamlEncoder := yaml.NewEncoder(writer)
	if err := yamlEncoder.Encode(content); err != nil {
		return err
	}
	return yamlEncoder.Close()
}

func (encoder *yamlEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return yaml.NewDecoder(reader).Decode(contentReceiver)
}
