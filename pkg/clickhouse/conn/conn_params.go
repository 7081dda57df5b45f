package conn

import (
	"net"
	"strconv"

	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
)

const (
	DefaultNativePort       = 9000
	DefaultSecureNativePort = 9440
)

// ConnParams are native protocol connection settings. Only fields tagged `log:"true"` are written to logs.
type ConnParams struct {
	Hosts      []string `yaml:"hosts" mapstructure:"hosts" log:"true"`
	Database   string   `yaml:"database" mapstructure:"database" log:"true"`
	User       string   `yaml:"user" mapstructure:"user" log:"true"`
	Password   string   `yaml:"password" mapstructure:"password"`
	SSLEnabled bool     `yaml:"ssl_enabled" mapstructure:"ssl_enabled" log:"true"`
	// PEM file with CA certificates, system pool is used when empty
	CACertPath string `yaml:"ca_cert_path" mapstructure:"ca_cert_path" log:"true"`
	// Cluster is used for ON CLUSTER queries, empty for single node installations
	Cluster string `yaml:"cluster" mapstructure:"cluster" log:"true"`
}

func (p *ConnParams) Validate() error {
	if len(p.Hosts) == 0 {
		return coded.Errorf(codes.InvalidConfig, "at least one host is required")
	}
	for _, host := range p.Hosts {
		if host == "" {
			return coded.Errorf(codes.InvalidConfig, "empty host")
		}
	}
	return nil
}

// Addrs returns hosts with port, default native port is added where it is missing.
func (p *ConnParams) Addrs() []string {
	defaultPort := DefaultNativePort
	if p.SSLEnabled {
		defaultPort = DefaultSecureNativePort
	}
	result := make([]string, 0, len(p.Hosts))
	for _, host := range p.Hosts {
		if _, _, err := net.SplitHostPort(host); err == nil {
			result = append(result, host)
			continue
		}
		result = append(result, net.JoinHostPort(host, strconv.Itoa(defaultPort)))
	}
	return result
}
