package engine

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/san-kum/mdconf/internal/dynval"
	applog "github.com/san-kum/mdconf/internal/log"
	"github.com/san-kum/mdconf/internal/marshal"
)

// MetaKey is the reserved root key holding run metadata.
const MetaKey = "__meta"

// Decode marshals v into c. Provided flags from an earlier Decode are
// cleared first; stored values are not. On failure c holds whatever was
// written before the offending key.
func (c *Config) Decode(v dynval.Value) error {
	root := c.Schema()
	root.Reset()
	m := marshal.New(marshal.WithLogger(applog.WithComponent("engine")))
	if err := m.Marshal(v, root); err != nil {
		return err
	}
	meta, ok := v.Get(MetaKey)
	if !ok {
		return nil
	}
	return decodeMeta(meta, &c.Meta)
}

func decodeMeta(v dynval.Value, out *Meta) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(v.Interface()); err != nil {
		return fmt.Errorf("engine: decode %s: %w", MetaKey, err)
	}
	return nil
}

// LoadBytes parses a YAML document and marshals it over the defaults.
func LoadBytes(data []byte) (*Config, error) {
	v, err := dynval.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("engine: parse: %w", err)
	}
	cfg := DefaultConfig()
	if err := cfg.Decode(v); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
