package config

import (
	"os"
	"time"
	"unsafe"

	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var fileAPI = json.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

func init() {
	// durations are accepted both as strings ("90s") and as plain nanoseconds
	json.RegisterTypeDecoderFunc("time.Duration", func(ptr unsafe.Pointer, iter *json.Iterator) {
		switch iter.WhatIsNext() {
		case json.StringValue:
			d, err := time.ParseDuration(iter.ReadString())
			if err != nil {
				iter.ReportError("decode duration", err.Error())
				return
			}

			*(*time.Duration)(ptr) = d
		default:
			*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
		}
	})
}

// Load reads a JSON file on top of the defaults. Fields absent in the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}

	return Parse(data)
}

// Parse decodes a JSON document on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := fileAPI.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}

	return cfg, Validate(cfg)
}

// Validate reports settings, with which the server cannot operate.
func Validate(cfg *Config) error {
	switch {
	case cfg.NET.ReadBufferSize <= 0:
		return errors.New("config: NET.ReadBufferSize must be positive")
	case cfg.URI.RequestLineSize.Maximal < 2:
		return errors.New("config: URI.RequestLineSize.Maximal must be at least 2")
	case cfg.NET.AcceptLoopInterruptPeriod <= 0:
		return errors.New("config: NET.AcceptLoopInterruptPeriod must be positive")
	case cfg.NET.ReadTimeout < 0:
		return errors.New("config: NET.ReadTimeout must not be negative")
	case len(cfg.CGI.Marker) == 0:
		return errors.New("config: CGI.Marker must not be empty")
	case len(cfg.CGI.QueryEnv) == 0:
		return errors.New("config: CGI.QueryEnv must not be empty")
	}

	return nil
}
