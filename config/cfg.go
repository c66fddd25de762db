package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ImagesConfig struct {
		ConvertUnsupported bool `yaml:"convert_unsupported"`
		RasterizeSVG       bool `yaml:"rasterize_svg"`
		MaxDimension       int  `yaml:"max_dimension" validate:"gte=0"`
		JPEGQuality        int  `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
	}

	MediaConfig struct {
		EmbedVideo bool `yaml:"embed_video"`
		EmbedAudio bool `yaml:"embed_audio"`
	}

	DocumentConfig struct {
		FixZip                bool         `yaml:"fix_zip"`
		ScopeSelector         string       `yaml:"scope_selector" validate:"required"`
		StylesheetPath        string       `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		SkipHidden            bool         `yaml:"skip_hidden"`
		Images                ImagesConfig `yaml:"images"`
		Media                 MediaConfig  `yaml:"media"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// OutputNameTemplateFieldName is yaml name of the output name template. The
// template is expanded per deck, gencfg must leave it alone.
const OutputNameTemplateFieldName TemplateFieldName = "output_name_template"

var requiredOptions = []func(*gencfg.ProcessingOptions){
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
}

// decodeConfig decodes data over cfg rejecting unknown keys, with check set
// it sanitizes and validates the result.
func decodeConfig(data []byte, cfg *Config, check bool) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	if !check {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig(check bool, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	data, err := gencfg.Process(ConfigTmpl, append(slices.Clone(requiredOptions), options...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to expand configuration template: %w", err)
	}
	cfg, err := decodeConfig(data, &Config{}, check)
	if err != nil {
		return nil, fmt.Errorf("bad configuration template: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration returns embedded defaults overlaid with values from the
// YAML file at path (if any). Result is sanitized and validated once, after
// the overlay.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	if len(path) == 0 {
		return defaultConfig(true, options...)
	}

	cfg, err := defaultConfig(false, options...)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration file: %w", err)
	}
	if cfg, err = decodeConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("configuration file '%s': %w", path, err)
	}
	return cfg, nil
}

// Prepare returns expanded embedded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump serializes effective configuration.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal configuration: %w", err)
	}
	return data, nil
}
