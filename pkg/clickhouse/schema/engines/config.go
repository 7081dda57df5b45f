package engines

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
)

// Config holds replication options of replicated engines. Empty value means the option is not set.
//
// TablePath may contain ${table_name} (or $table_name) placeholder, it is replaced with the name of the table.
type Config struct {
	TablePath   string `mapstructure:"table_path" yaml:"table_path" json:"table_path"`
	ReplicaName string `mapstructure:"replica_name" yaml:"replica_name" json:"replica_name"`
}

// ConfigFromMap decodes loosely typed options, e.g. a section of user-provided YAML or JSON.
// Unknown keys are ignored, nil map gives nil config.
func ConfigFromMap(raw map[string]any) (*Config, error) {
	if raw == nil {
		return nil, nil
	}

	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		if value == nil || (key != FieldTablePath && key != FieldReplicaName) {
			continue
		}
		str, err := cast.ToStringE(value)
		if err != nil {
			return nil, coded.Errorf(codes.InvalidConfig, "engine option %s: %w", key, err)
		}
		normalized[key] = str
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, coded.Errorf(codes.InvalidConfig, "unable to build engine config decoder: %w", err)
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, coded.Errorf(codes.InvalidConfig, "unable to decode engine config: %w", err)
	}
	return &cfg, nil
}
