package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tenantkit/tenantkit/tenant"
)

// sourcesFile is the on-disk shape of a tenant source chain:
//
//	sources:
//	  - strategy: header
//	    options:
//	      name: X-Tenant-ID
//	  - strategy: subdomain
//	    options:
//	      suffix: .saas.com
type sourcesFile struct {
	Sources []tenant.SourceConfig `yaml:"sources"`
}

// LoadSources reads an ordered tenant source list from a YAML file. The
// result feeds tenant.Registry.Build; list order is preserved.
func LoadSources(path string) ([]tenant.SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingSources, err)
	}
	return ParseSources(data)
}

// ParseSources decodes an ordered tenant source list from YAML bytes.
func ParseSources(data []byte) ([]tenant.SourceConfig, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrParsingSources, err)
	}
	if len(f.Sources) == 0 {
		return nil, ErrNoSources
	}
	return f.Sources, nil
}

// TenancyConfig holds environment-driven settings for the tenant middleware.
type TenancyConfig struct {
	Required        bool          `env:"TENANT_REQUIRED" envDefault:"false"`
	ContextKey      string        `env:"TENANT_CONTEXT_KEY" envDefault:"tenant"`
	HeaderName      string        `env:"TENANT_HEADER" envDefault:"X-Tenant-ID"`
	SubdomainSuffix string        `env:"TENANT_SUBDOMAIN_SUFFIX"`
	SourcesFile     string        `env:"TENANT_SOURCES_FILE"`
	CacheTTL        time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}
