package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	derrors "github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read into the configuration
const EnvPrefix = "DRAWABLES_"

// FileNames are the project files looked for, in order
var FileNames = []string{"drawables.toml", ".drawables.toml", "drawables.yaml", "drawables.yml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the project file
type LoadOptions struct {
	// File is an explicit configuration file; it must exist
	File string
	// Dir is searched for FileNames when File is empty; empty means "."
	Dir string
	// SkipFile ignores project files
	SkipFile bool
	// SkipEnv ignores DRAWABLES_ variables
	SkipEnv bool
	// Overrides are dotted keys (e.g. "copy.output") applied last, used
	// for command line flags
	Overrides map[string]interface{}
}

// Load builds the configuration from defaults, the project file, the
// environment and finally the overrides
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, derrors.Wrap(err, derrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project file
	path, err := findFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, derrors.Wrapf(err, derrors.ErrConfigParse, "failed to parse %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to load environment")
		}
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, derrors.Wrap(err, derrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	if err := unmarshal(k, &cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// Default returns the embedded defaults alone
func Default() (*Config, error) {
	return Load(LoadOptions{SkipFile: true, SkipEnv: true})
}

// envKey maps DRAWABLES_UNPACK__LOCAL_REPOSITORY to unpack.local_repository
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func findFile(opts LoadOptions) (string, error) {
	if opts.SkipFile {
		return "", nil
	}
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", derrors.Wrapf(err, derrors.ErrConfigLoad, "configuration file %s not found", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return toml.Parser()
}

func unmarshal(k *koanf.Koanf, cfg *Config) error {
	return k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSpaceHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	})
}
