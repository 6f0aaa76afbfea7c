package models

import "time"

// AwsConfig carries everything needed to build the Cloud Control and
// CloudFormation clients.
type AwsConfig struct {
	Region          string `mapstructure:"region"`
	Profile         string `mapstructure:"profile"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
	Endpoint        string `mapstructure:"endpoint"`
	IMDSDisable     bool   `mapstructure:"imds_disable"`

	// Transport policy applied beneath every SDK call
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
}

// HasStaticCredentials reports whether an explicit key pair was supplied.
func (c AwsConfig) HasStaticCredentials() bool {
	return len(c.AccessKeyID) > 0 && len(c.SecretAccessKey) > 0
}
