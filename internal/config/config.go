package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/xcom/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core    `yaml:"core"`
	UI      UI      `yaml:"ui"`
	Logging Logging `yaml:"logging"`
}

type Core struct {
	Transfer   Transfer   `yaml:"transfer"`
	RecycleBin RecycleBin `yaml:"recyclebin"`
	Audit      Audit      `yaml:"audit"`
}

type Transfer struct {
	// ConfirmOverwrite asks before replacing an existing target.
	// Only the portable transferer honours it; the Windows shell has its own dialogs.
	ConfirmOverwrite bool     `yaml:"confirm_overwrite"`
	Exclude          []string `yaml:"exclude"`
}

type RecycleBin struct {
	Verbose bool     `yaml:"verbose"`
	Roots   []string `yaml:"roots" validate:"dive,dirpath_any"`
}

type Audit struct {
	Enabled bool `yaml:"enabled"`
}

type UI struct {
	Layout       string `yaml:"layout" validate:"required,oneof=lines table"`
	MaxPathWidth int    `yaml:"max_path_width" validate:"gte=0"`
	Style        Style  `yaml:"style"`
}

type Style struct {
	Index string `yaml:"index" validate:"validColor"`
	Date  string `yaml:"date" validate:"validColor"`
	Name  string `yaml:"name" validate:"validColor"`
	Path  string `yaml:"path" validate:"validColor"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"oneof=debug info warn error"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
	MaxAge   string `yaml:"max_age" validate:"validDuration"`
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

type parser struct{}

func (p parser) getDefaultConfig() Config {
	return Config{
		Core: Core{
			Transfer: Transfer{
				ConfirmOverwrite: true,
				Exclude:          []string{},
			},
			RecycleBin: RecycleBin{
				Verbose: true,
				Roots:   []string{},
			},
			Audit: Audit{
				Enabled: true,
			},
		},
		UI: UI{
			Layout:       "lines", // or table
			MaxPathWidth: 0,
			Style: Style{
				Index: "#FF55FF",
				Date:  "#FFFF55",
				Name:  "#55FFFF",
				Path:  "#AAAAFF",
			},
		},
		Logging: Logging{
			Enabled: true,
			Level:   "debug",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
				MaxAge:   "30 days",
			},
		},
	}
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return parser{}.getDefaultConfig()
}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(p.getDefaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.XCOM_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) ensureConfigFile(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dir)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = f.WriteString(p.getDefaultConfigContents())
		return err
	}

	return nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile(path string) (Config, error) {
	// Keys missing from the file keep their default values
	cfg := p.getDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validColor", validateColorCode)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("dirpath_any", validateDirPath)

	return parser{}
}

// Validate checks cfg against the struct tags of Config.
func Validate(cfg Config) error {
	if validate == nil {
		initParser()
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("validation error: Field %s, %q is invalid", verrs[0].Namespace(), verrs[0].Value())
		}
		return err
	}
	return nil
}

// Parse reads the config at path. An empty path selects the default
// location, which is created with default contents when missing.
func Parse(path string) (Config, error) {
	parser := initParser()

	configPath := path
	if configPath == "" {
		configPath = env.XCOM_CONFIG_PATH
		if err := parser.ensureConfigFile(configPath); err != nil {
			return parser.getDefaultConfig(), parsingError{err: configError{
				configPath: configPath,
				parser:     parser,
				err:        err,
			}}
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
