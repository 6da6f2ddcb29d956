package manifest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cuemby/clusterview/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundle = `
apiVersion: v1
kind: Deployment
metadata:
  name: web
  namespace: shop
  labels:
    app: web
spec:
  replicas: 3
  containers:
    - name: nginx
      image: nginx:1.27
  configmaps: [settings]
---
kind: namespace
metadata:
  name: shop
---
kind: ConfigMap
metadata:
  name: settings
  namespace: shop
data:
  LOG_LEVEL: debug
---
kind: Service
metadata:
  name: web
  namespace: shop
spec:
  type: NodePort
  selector:
    app: web
  ports:
    - port: 80
---
kind: Pod
metadata:
  name: debug
spec:
  containers:
    - image: busybox
      command: [sleep, "3600"]
`

func TestDecode(t *testing.T) {
	resources, err := Decode(strings.NewReader(bundle))
	require.NoError(t, err)
	require.Len(t, resources, 5)

	assert.Equal(t, KindDeployment, resources[0].Kind)
	assert.Equal(t, KindNamespace, resources[1].Kind)
	assert.Equal(t, "", resources[1].Metadata.Namespace)
	assert.Equal(t, map[string]string{"LOG_LEVEL": "debug"}, resources[2].Data)
	assert.Equal(t, "default", resources[4].Metadata.Namespace)

	dep, err := resources[0].Deployment()
	require.NoError(t, err)
	assert.Equal(t, 3, dep.Replicas)
	assert.Equal(t, []string{"settings"}, dep.Configmaps)
	assert.Equal(t, "nginx:1.27", dep.Containers[0].Image)
	assert.Equal(t, map[string]string{"app": "web"}, dep.Labels)

	svc, err := resources[3].Service()
	require.NoError(t, err)
	assert.Equal(t, "NodePort", svc.Type)
	require.Len(t, svc.Ports, 1)
	assert.Equal(t, types.ServicePort{Protocol: "TCP", Port: 80, TargetPort: 80}, svc.Ports[0])

	pod, err := resources[4].Pod()
	require.NoError(t, err)
	assert.Equal(t, "debug-0", pod.Containers[0].Name)
	assert.Equal(t, []string{"sleep", "3600"}, pod.Containers[0].Command)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unsupported kind", input: "kind: Secret\nmetadata:\n  name: x\n", want: "unsupported resource kind"},
		{name: "missing kind", input: "metadata:\n  name: x\n", want: "kind is required"},
		{name: "missing name", input: "kind: Pod\n", want: "metadata.name is required"},
		{name: "invalid yaml", input: "kind: [Pod\n", want: "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeSkipsEmptyDocuments(t *testing.T) {
	resources, err := DecodeBytes([]byte("---\n---\nkind: Namespace\nmetadata:\n  name: dev\n---\n"))
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "dev", resources[0].Metadata.Name)
}

func TestResourceValidation(t *testing.T) {
	resources, err := DecodeBytes([]byte(`
kind: Deployment
metadata:
  name: empty
spec:
  replicas: 2
---
kind: Pod
metadata:
  name: noimage
spec:
  containers:
    - name: app
---
kind: Deployment
metadata:
  name: defaults
spec:
  containers:
    - image: app:1
`))
	require.NoError(t, err)
	require.Len(t, resources, 3)

	_, err = resources[0].Deployment()
	assert.ErrorContains(t, err, "at least one container")

	_, err = resources[1].Pod()
	assert.ErrorContains(t, err, "image is required")

	dep, err := resources[2].Deployment()
	require.NoError(t, err)
	assert.Equal(t, 1, dep.Replicas)
}

type fakeDispatcher struct {
	calls   []string
	failing map[string]bool
}

func (f *fakeDispatcher) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failing[call] {
		return errors.New("backend refused " + call)
	}
	return nil
}

func (f *fakeDispatcher) AddNamespace(ctx context.Context, ns *types.Namespace) error {
	return f.record("add namespace " + ns.Name)
}

func (f *fakeDispatcher) AddConfigmap(ctx context.Context, cm *types.Configmap) error {
	return f.record("add configmap " + cm.Name)
}

func (f *fakeDispatcher) AddService(ctx context.Context, svc *types.Service) error {
	return f.record("add service " + svc.Name)
}

func (f *fakeDispatcher) AddPod(ctx context.Context, req *types.PodRequest) error {
	return f.record("add pod " + req.Name)
}

func (f *fakeDispatcher) AddDeployment(ctx context.Context, req *types.DeploymentRequest) error {
	return f.record("add deployment " + req.Name)
}

func (f *fakeDispatcher) FetchNamespaces(ctx context.Context) error { return f.record("fetch namespaces") }
func (f *fakeDispatcher) FetchConfigmaps(ctx context.Context) error { return f.record("fetch configmaps") }
func (f *fakeDispatcher) FetchServices(ctx context.Context) error   { return f.record("fetch services") }
func (f *fakeDispatcher) FetchPods(ctx context.Context) error       { return f.record("fetch pods") }
func (f *fakeDispatcher) FetchPodRecords(ctx context.Context) error { return f.record("fetch pod records") }
func (f *fakeDispatcher) FetchDeployments(ctx context.Context) error {
	return f.record("fetch deployments")
}
func (f *fakeDispatcher) FetchDeploymentRecords(ctx context.Context) error {
	return f.record("fetch deployment records")
}

func TestApplyOrder(t *testing.T) {
	resources, err := DecodeBytes([]byte(bundle))
	require.NoError(t, err)

	d := &fakeDispatcher{}
	result, err := Apply(context.Background(), d, resources)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"add namespace shop",
		"add configmap settings",
		"add service web",
		"add pod debug",
		"add deployment web",
		"fetch namespaces",
		"fetch configmaps",
		"fetch services",
		"fetch pods",
		"fetch pod records",
		"fetch deployments",
		"fetch deployment records",
	}, d.calls)
	assert.Equal(t, []string{"Namespace/shop", "ConfigMap/settings", "Service/web", "Pod/debug", "Deployment/web"}, result.Created)
	assert.Empty(t, result.Failed)
}

func TestApplyContinuesOnFailure(t *testing.T) {
	resources, err := DecodeBytes([]byte(bundle))
	require.NoError(t, err)

	d := &fakeDispatcher{failing: map[string]bool{"add service web": true}}
	result, err := Apply(context.Background(), d, resources)
	require.Error(t, err)

	assert.Contains(t, result.Failed, "Service/web")
	assert.Len(t, result.Created, 4)
	assert.NotContains(t, d.calls, "fetch services")
	assert.Contains(t, d.calls, "add deployment web")
}
