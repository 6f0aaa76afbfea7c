package aws

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/cloudcontrol"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
)

const (
	CloudControlComponent   = "AWS CloudControl API"
	CloudFormationComponent = "AWS CloudFormation"

	defaultRegion = "us-east-1"
)

// Clients holds the two remote handles used by the tool layer. It is built
// once at startup and shared read-only between concurrent tool calls.
type Clients struct {
	Region       string
	CloudControl Handle[CloudControlAPI]
	TypeRegistry Handle[TypeRegistryAPI]
}

// NewClients builds both handles from awsConfig. It never fails: any
// construction error is logged and both handles are left unavailable for
// the lifetime of the process.
func NewClients(ctx context.Context, awsConfig models.AwsConfig) (clients *Clients) {

	region := awsConfig.Region
	if len(region) == 0 {
		region = defaultRegion
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while creating AWS clients: %v", r)
			logrus.WithError(err).Error("Failed to initialize AWS CloudControl API client")
			clients = NewUnavailableClients(region, err)
		}
	}()

	sdkConfig, err := CreateAwsConfig(ctx, awsConfig)

	if err != nil {
		logrus.WithError(err).Error("Failed to initialize AWS CloudControl API client")
		return NewUnavailableClients(region, err)
	}

	clients = NewClientsFromConfig(sdkConfig.Config)

	logrus.WithField("region", clients.Region).Debug("AWS CloudControl API client initialized")

	return clients
}

// NewClientsFromConfig wraps clients created from an already loaded SDK config.
func NewClientsFromConfig(sdkConfig aws.Config) *Clients {
	return &Clients{
		Region: sdkConfig.Region,
		CloudControl: Available[CloudControlAPI](
			CloudControlComponent, cloudcontrol.NewFromConfig(sdkConfig)),
		TypeRegistry: Available[TypeRegistryAPI](
			CloudFormationComponent, cloudformation.NewFromConfig(sdkConfig)),
	}
}

// NewUnavailableClients returns a holder whose handles both report cause.
func NewUnavailableClients(region string, cause error) *Clients {
	return &Clients{
		Region:       region,
		CloudControl: Unavailable[CloudControlAPI](CloudControlComponent, cause),
		TypeRegistry: Unavailable[TypeRegistryAPI](CloudFormationComponent, cause),
	}
}

type AwsConfigurationProvider struct {
	Config aws.Config
}

func CreateAwsConfig(ctx context.Context, awsConfig models.AwsConfig) (*AwsConfigurationProvider, error) {

	awsSdkConfig, err := config.LoadDefaultConfig(
		ctx,
		loadOptions(awsConfig)...,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AwsConfigurationProvider{
		Config: awsSdkConfig,
	}, nil
}

func loadOptions(awsConfig models.AwsConfig) []func(*config.LoadOptions) error {

	awsOptions := []func(*config.LoadOptions) error{}

	if awsConfig.HasStaticCredentials() {
		logrus.Debug("Using static AWS credentials")
		awsOptions = append(awsOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				awsConfig.AccessKeyID,
				awsConfig.SecretAccessKey,
				awsConfig.SessionToken,
			),
		))
	} else if len(awsConfig.Profile) > 0 {
		logrus.WithField("profile", awsConfig.Profile).Debug("Using shared AWS config profile")
		awsOptions = append(awsOptions, config.WithSharedConfigProfile(awsConfig.Profile))
	} else {
		if len(awsConfig.AccessKeyID) > 0 || len(awsConfig.SecretAccessKey) > 0 {
			logrus.Warn("Incomplete static AWS credentials, falling back to the default credential chain")
		}
		logrus.Debug("No AWS credentials provided, using IAM role or default profile")
	}

	region := awsConfig.Region
	if len(region) == 0 {
		region = defaultRegion
	}

	logrus.WithField("region", region).Debug("Setting AWS region")

	awsOptions = append(awsOptions, config.WithRegion(region))

	// Support custom endpoint for testing (e.g., LocalStack)
	if len(awsConfig.Endpoint) > 0 {
		logrus.WithField("endpoint", awsConfig.Endpoint).Info("Using custom AWS endpoint")
		awsOptions = append(awsOptions, config.WithBaseEndpoint(awsConfig.Endpoint))
	}

	if awsConfig.IMDSDisable {
		logrus.Debug("Disabling IMDS for AWS credentials")
		awsOptions = append(awsOptions, config.WithEC2IMDSClientEnableState(imds.ClientDisabled))
	}

	awsOptions = append(awsOptions,
		config.WithHTTPClient(newHTTPClient(awsConfig)),
		config.WithRetryMaxAttempts(maxAttempts(awsConfig)),
	)

	return awsOptions
}

// newHTTPClient applies the connect and read timeouts beneath the SDK.
func newHTTPClient(awsConfig models.AwsConfig) *awshttp.BuildableClient {
	client := awshttp.NewBuildableClient()

	if awsConfig.ConnectTimeout > 0 {
		client = client.WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = awsConfig.ConnectTimeout
		})
	}

	if awsConfig.ReadTimeout > 0 {
		client = client.WithTransportOptions(func(t *http.Transport) {
			t.ResponseHeaderTimeout = awsConfig.ReadTimeout
		})
	}

	return client
}

func maxAttempts(awsConfig models.AwsConfig) int {
	if awsConfig.MaxAttempts < 1 {
		return 1
	}
	return awsConfig.MaxAttempts
}
