package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Indexer   Indexer   `json:"indexer" yaml:"indexer" mapstructure:"indexer"`
	Backend   Backend   `json:"backend" yaml:"backend" mapstructure:"backend"`
	Subtitles Subtitles `json:"subtitles" yaml:"subtitles" mapstructure:"subtitles"`
	Download  Download  `json:"download" yaml:"download" mapstructure:"download"`
	Catalog   Catalog   `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

// Indexer points at the release listing site
type Indexer struct {
	Scheme      string        `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`
	Host        string        `json:"host" yaml:"host" mapstructure:"host"`
	MinInterval time.Duration `json:"minInterval" yaml:"minInterval" mapstructure:"minInterval" validate:"min=0s"`
	UserAgent   string        `json:"userAgent" yaml:"userAgent" mapstructure:"userAgent"`
}

// Backend configures the torrent client downloads are submitted to
type Backend struct {
	Implementation string        `json:"implementation" yaml:"implementation" mapstructure:"implementation" validate:"required,oneof=qbittorrent transmission"`
	Scheme         string        `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`
	Host           string        `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	Port           int           `json:"port" yaml:"port" mapstructure:"port" validate:"min=0,max=65535"`
	Username       string        `json:"username" yaml:"username" mapstructure:"username"`
	Password       string        `json:"password" yaml:"password" mapstructure:"password"`
	Timeout        time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"min=0s"`
}

type Subtitles struct {
	Scheme      string `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`
	Host        string `json:"host" yaml:"host" mapstructure:"host"`
	CatalogPath string `json:"catalogPath" yaml:"catalogPath" mapstructure:"catalogPath"`
}

// Download houses the orchestration policy and where files land on disk
type Download struct {
	Root          string        `json:"root" yaml:"root" mapstructure:"root" validate:"required"`
	Cap           int           `json:"cap" yaml:"cap" mapstructure:"cap" validate:"min=1"`
	PollInterval  time.Duration `json:"pollInterval" yaml:"pollInterval" mapstructure:"pollInterval" validate:"gt=0s"`
	TaskTimeout   time.Duration `json:"taskTimeout" yaml:"taskTimeout" mapstructure:"taskTimeout" validate:"min=0s"`
	DirectoryName string        `json:"directoryName" yaml:"directoryName" mapstructure:"directoryName"`
}

type Catalog struct {
	Tags []string `json:"tags" yaml:"tags" mapstructure:"tags"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks the configuration against its struct tags
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
