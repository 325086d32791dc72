// Package config loads ec2-observe settings from defaults, an optional
// .ec2observe.{yaml,yml,toml} file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/elC0mpa/ec2-observe/logging"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRegion    = "us-east-1"
	DefaultDataset   = "billing_export"
	DefaultAddr      = ":8080"
	DefaultJobTag    = "JobId"
	DefaultThreshold = 2.0
	filterStateFile  = "filters.yaml"
	configDirName    = "ec2-observe"
	localFilterState = ".ec2observe-filters.yaml"
)

// AWS holds the AWS SDK settings
type AWS struct {
	Region  string `yaml:"region" toml:"region"`
	Profile string `yaml:"profile" toml:"profile"`
}

// GCP holds the project and the BigQuery billing export location
type GCP struct {
	ProjectID      string `yaml:"project_id" toml:"project_id"`
	BillingAccount string `yaml:"billing_account" toml:"billing_account"`
	Dataset        string `yaml:"dataset" toml:"dataset"`
}

// Azure holds the subscription to inspect and, optionally, the tenant to authenticate against
type Azure struct {
	SubscriptionID string `yaml:"subscription_id" toml:"subscription_id"`
	TenantID       string `yaml:"tenant_id" toml:"tenant_id"`
}

// Config holds ec2-observe configuration
type Config struct {
	Provider         string         `yaml:"provider" toml:"provider"`
	AWS              AWS            `yaml:"aws" toml:"aws"`
	GCP              GCP            `yaml:"gcp" toml:"gcp"`
	Azure            Azure          `yaml:"azure" toml:"azure"`
	Logging          logging.Config `yaml:"logging" toml:"logging"`
	FilterStatePath  string         `yaml:"filter_state_path" toml:"filter_state_path"`
	Addr             string         `yaml:"addr" toml:"addr"`
	JobTag           string         `yaml:"job_tag" toml:"job_tag"`
	AnomalyThreshold float64        `yaml:"anomaly_threshold" toml:"anomaly_threshold"`
	IncludeSamples   bool           `yaml:"include_samples" toml:"include_samples"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Provider:         "aws",
		AWS:              AWS{Region: DefaultRegion},
		GCP:              GCP{Dataset: DefaultDataset},
		Logging:          logging.DefaultConfig(),
		FilterStatePath:  defaultFilterStatePath(),
		Addr:             DefaultAddr,
		JobTag:           DefaultJobTag,
		AnomalyThreshold: DefaultThreshold,
	}
}

func defaultFilterStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return localFilterState
	}
	return filepath.Join(dir, configDirName, filterStateFile)
}

// Load searches dir for .ec2observe.yaml, .ec2observe.yml or .ec2observe.toml, overlays
// the first one found onto the defaults and then applies environment overrides.
func Load(dir string) (Config, error) {
	cfg := Default()

	candidates := []struct {
		name   string
		decode func([]byte, *Config) error
	}{
		{".ec2observe.yaml", decodeYAML},
		{".ec2observe.yml", decodeYAML},
		{".ec2observe.toml", decodeTOML},
	}

	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := c.decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	return yaml.Unmarshal(data, cfg)
}

func decodeTOML(data []byte, cfg *Config) error {
	return toml.Unmarshal(data, cfg)
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("EC2OBSERVE_PROVIDER", &c.Provider)
	setString("AWS_REGION", &c.AWS.Region)
	setString("AWS_PROFILE", &c.AWS.Profile)
	setString("GCP_PROJECT_ID", &c.GCP.ProjectID)
	setString("GCP_BILLING_ACCOUNT", &c.GCP.BillingAccount)
	setString("GCP_BILLING_DATASET", &c.GCP.Dataset)
	setString("AZURE_SUBSCRIPTION_ID", &c.Azure.SubscriptionID)
	setString("AZURE_TENANT_ID", &c.Azure.TenantID)
	setString("EC2OBSERVE_LOG_LEVEL", &c.Logging.Level)
	setString("EC2OBSERVE_LOG_FORMAT", &c.Logging.Format)
	setString("EC2OBSERVE_FILTER_STATE", &c.FilterStatePath)
	setString("EC2OBSERVE_ADDR", &c.Addr)
	setString("EC2OBSERVE_JOB_TAG", &c.JobTag)

	if v := os.Getenv("EC2OBSERVE_ANOMALY_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid EC2OBSERVE_ANOMALY_THRESHOLD %q: %w", v, err)
		}
		c.AnomalyThreshold = threshold
	}
	if v := os.Getenv("EC2OBSERVE_INCLUDE_SAMPLES"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EC2OBSERVE_INCLUDE_SAMPLES %q: %w", v, err)
		}
		c.IncludeSamples = include
	}
	return nil
}

// HasAWS returns true if AWS is available (always true - uses default credential chain)
func (c Config) HasAWS() bool {
	return true
}

// HasGCP returns true if GCP project is configured
func (c Config) HasGCP() bool {
	return c.GCP.ProjectID != ""
}

// HasGCPBilling returns true if GCP billing is configured for cost analysis
func (c Config) HasGCPBilling() bool {
	return c.GCP.ProjectID != "" && c.GCP.BillingAccount != ""
}

// HasAzure returns true if Azure subscription is configured
func (c Config) HasAzure() bool {
	return c.Azure.SubscriptionID != ""
}
