package config

import "errors"

var errReadBytesNotSupported = errors.New("config: map provider does not support ReadBytes")

// mapProvider is a koanf provider over an in-memory map.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
