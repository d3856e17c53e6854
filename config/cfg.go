package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
	"go.uber.org/zap"

	"cssc/compress"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// UsageConfig lists the markup vocabulary the stylesheet is allowed to
	// target. Empty lists mean no restriction of the corresponding kind.
	UsageConfig struct {
		Tags    []string `yaml:"tags" validate:"dive,required"`
		Classes []string `yaml:"classes" validate:"dive,required"`
		IDs     []string `yaml:"ids" validate:"dive,required"`
	}

	MinifyConfig struct {
		Restructure bool                   `yaml:"restructure"`
		Comments    compress.CommentPolicy `yaml:"comments" validate:"gte=0,lte=2"`
		Debug       int                    `yaml:"debug" validate:"gte=0,lte=3"`
		Usage       UsageConfig            `yaml:"usage"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Minify    MinifyConfig   `yaml:"minify"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Options translates the configuration into engine options for one
// compression run.
func (m *MinifyConfig) Options(log *zap.Logger) compress.Options {
	opts := compress.Options{
		Restructure: compress.Bool(m.Restructure),
		Comments:    m.Comments,
		Debug:       m.Debug,
		Logger:      log,
	}
	if len(m.Usage.Tags) > 0 || len(m.Usage.Classes) > 0 || len(m.Usage.IDs) > 0 {
		opts.Usage = &compress.Usage{
			Tags:    m.Usage.Tags,
			Classes: m.Usage.Classes,
			IDs:     m.Usage.IDs,
		}
	}
	return opts
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitizing failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
