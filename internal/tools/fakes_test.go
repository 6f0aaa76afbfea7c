package tools

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/service/cloudcontrol"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/smithy-go"

	"github.com/thand-io/cloudcontrol-mcp/internal/providers/aws"
)

var errUnexpectedCall = errors.New("unexpected call")

// enter counts a remote call and, like the SDK, refuses a context that is
// already done.
func enter(calls *atomic.Int32, ctx context.Context) error {
	calls.Add(1)
	return ctx.Err()
}

// fakeCloudControl answers each method with the matching func field and
// records how many remote calls were made.
type fakeCloudControl struct {
	calls atomic.Int32

	// observe, when set, sees the context each remote call receives
	observe func(context.Context)

	createResource           func(*cloudcontrol.CreateResourceInput) (*cloudcontrol.CreateResourceOutput, error)
	getResource              func(*cloudcontrol.GetResourceInput) (*cloudcontrol.GetResourceOutput, error)
	updateResource           func(*cloudcontrol.UpdateResourceInput) (*cloudcontrol.UpdateResourceOutput, error)
	deleteResource           func(*cloudcontrol.DeleteResourceInput) (*cloudcontrol.DeleteResourceOutput, error)
	listResources            func(*cloudcontrol.ListResourcesInput) (*cloudcontrol.ListResourcesOutput, error)
	getResourceRequestStatus func(*cloudcontrol.GetResourceRequestStatusInput) (*cloudcontrol.GetResourceRequestStatusOutput, error)
	cancelResourceRequest    func(*cloudcontrol.CancelResourceRequestInput) (*cloudcontrol.CancelResourceRequestOutput, error)
	listResourceRequests     func(*cloudcontrol.ListResourceRequestsInput) (*cloudcontrol.ListResourceRequestsOutput, error)
}

func (f *fakeCloudControl) CreateResource(ctx context.Context, in *cloudcontrol.CreateResourceInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.CreateResourceOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.createResource == nil {
		return nil, errUnexpectedCall
	}
	return f.createResource(in)
}

func (f *fakeCloudControl) GetResource(ctx context.Context, in *cloudcontrol.GetResourceInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.GetResourceOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.getResource == nil {
		return nil, errUnexpectedCall
	}
	return f.getResource(in)
}

func (f *fakeCloudControl) UpdateResource(ctx context.Context, in *cloudcontrol.UpdateResourceInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.UpdateResourceOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.updateResource == nil {
		return nil, errUnexpectedCall
	}
	return f.updateResource(in)
}

func (f *fakeCloudControl) DeleteResource(ctx context.Context, in *cloudcontrol.DeleteResourceInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.DeleteResourceOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.deleteResource == nil {
		return nil, errUnexpectedCall
	}
	return f.deleteResource(in)
}

func (f *fakeCloudControl) ListResources(ctx context.Context, in *cloudcontrol.ListResourcesInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.ListResourcesOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.listResources == nil {
		return nil, errUnexpectedCall
	}
	return f.listResources(in)
}

func (f *fakeCloudControl) GetResourceRequestStatus(ctx context.Context, in *cloudcontrol.GetResourceRequestStatusInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.GetResourceRequestStatusOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.getResourceRequestStatus == nil {
		return nil, errUnexpectedCall
	}
	return f.getResourceRequestStatus(in)
}

func (f *fakeCloudControl) CancelResourceRequest(ctx context.Context, in *cloudcontrol.CancelResourceRequestInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.CancelResourceRequestOutput, error) {
	if f.observe != nil {
		f.observe(ctx)
	}
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.cancelResourceRequest == nil {
		return nil, errUnexpectedCall
	}
	return f.cancelResourceRequest(in)
}

func (f *fakeCloudControl) ListResourceRequests(ctx context.Context, in *cloudcontrol.ListResourceRequestsInput, _ ...func(*cloudcontrol.Options)) (*cloudcontrol.ListResourceRequestsOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.listResourceRequests == nil {
		return nil, errUnexpectedCall
	}
	return f.listResourceRequests(in)
}

type fakeTypeRegistry struct {
	calls atomic.Int32

	listTypes func(*cloudformation.ListTypesInput) (*cloudformation.ListTypesOutput, error)
}

func (f *fakeTypeRegistry) ListTypes(ctx context.Context, in *cloudformation.ListTypesInput, _ ...func(*cloudformation.Options)) (*cloudformation.ListTypesOutput, error) {
	if err := enter(&f.calls, ctx); err != nil {
		return nil, err
	}
	if f.listTypes == nil {
		return nil, errUnexpectedCall
	}
	return f.listTypes(in)
}

type notification struct {
	Level   Level
	Message string
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notification
}

func (r *recordingNotifier) Notify(ctx context.Context, level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notification{Level: level, Message: message})
}

func (r *recordingNotifier) levels() []Level {
	r.mu.Lock()
	defer r.mu.Unlock()

	levels := make([]Level, 0, len(r.notifications))
	for _, n := range r.notifications {
		levels = append(levels, n.Level)
	}
	return levels
}

func (r *recordingNotifier) messagesAt(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []string
	for _, n := range r.notifications {
		if n.Level == level {
			messages = append(messages, n.Message)
		}
	}
	return messages
}

func newTestService(cloudControl *fakeCloudControl, registry *fakeTypeRegistry) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	clients := &aws.Clients{
		Region:       "us-east-1",
		CloudControl: aws.Available[aws.CloudControlAPI](aws.CloudControlComponent, cloudControl),
		TypeRegistry: aws.Available[aws.TypeRegistryAPI](aws.CloudFormationComponent, registry),
	}
	return NewService(clients, notifier), notifier
}

func validationError(message string) error {
	return &smithy.GenericAPIError{
		Code:    "ValidationException",
		Message: message,
	}
}

func mustObjectDocument(v any) Document {
	doc, err := NewObjectDocument(v)
	if err != nil {
		panic(err)
	}
	return doc
}
