package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cuemby/clusterview/pkg/types"
	"gopkg.in/yaml.v3"
)

// Kind names accepted in manifests
const (
	KindNamespace  = "Namespace"
	KindConfigmap  = "ConfigMap"
	KindService    = "Service"
	KindPod        = "Pod"
	KindDeployment = "Deployment"
)

// applyOrder creates dependencies before their dependents
var applyOrder = []string{KindNamespace, KindConfigmap, KindService, KindPod, KindDeployment}

// Resource is one document of a manifest
type Resource struct {
	APIVersion string            `yaml:"apiVersion"`
	Kind       string            `yaml:"kind"`
	Metadata   Metadata          `yaml:"metadata"`
	Spec       yaml.Node         `yaml:"spec"`
	Data       map[string]string `yaml:"data,omitempty"`
}

// Metadata identifies a resource
type Metadata struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace,omitempty"`
	Labels    map[string]string `yaml:"labels,omitempty"`
}

type podSpec struct {
	NodeName   string                   `yaml:"nodeName"`
	Containers []types.ContainerRequest `yaml:"containers"`
}

type deploymentSpec struct {
	Replicas   *int                     `yaml:"replicas"`
	Containers []types.ContainerRequest `yaml:"containers"`
	Networks   []string                 `yaml:"networks"`
	Volumes    []string                 `yaml:"volumes"`
	Configmaps []string                 `yaml:"configmaps"`
}

type serviceSpec struct {
	Type      string            `yaml:"type"`
	Selector  map[string]string `yaml:"selector"`
	ClusterIP string            `yaml:"clusterIP"`
	Ports     []struct {
		Name       string `yaml:"name"`
		Protocol   string `yaml:"protocol"`
		Port       int    `yaml:"port"`
		TargetPort int    `yaml:"targetPort"`
		NodePort   int    `yaml:"nodePort"`
	} `yaml:"ports"`
}

// Decode reads every YAML document of r. Empty documents are skipped; kind
// names are normalized case-insensitively.
func Decode(r io.Reader) ([]Resource, error) {
	dec := yaml.NewDecoder(r)

	var resources []Resource
	for doc := 1; ; doc++ {
		var res Resource
		err := dec.Decode(&res)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: failed to parse YAML: %w", doc, err)
		}
		if res.Kind == "" && res.Metadata.Name == "" {
			continue
		}

		kind, err := normalizeKind(res.Kind)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}
		res.Kind = kind
		if res.Metadata.Name == "" {
			return nil, fmt.Errorf("document %d: %s metadata.name is required", doc, kind)
		}
		if res.Metadata.Namespace == "" && kind != KindNamespace {
			res.Metadata.Namespace = "default"
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// DecodeBytes is Decode over an in-memory manifest
func DecodeBytes(data []byte) ([]Resource, error) {
	return Decode(bytes.NewReader(data))
}

func normalizeKind(kind string) (string, error) {
	for _, k := range applyOrder {
		if strings.EqualFold(kind, k) {
			return k, nil
		}
	}
	if kind == "" {
		return "", fmt.Errorf("kind is required")
	}
	return "", fmt.Errorf("unsupported resource kind: %s", kind)
}

func (r *Resource) decodeSpec(out any) error {
	if r.Spec.IsZero() {
		return nil
	}
	if err := r.Spec.Decode(out); err != nil {
		return fmt.Errorf("%s %s: invalid spec: %w", r.Kind, r.Metadata.Name, err)
	}
	return nil
}

// Namespace converts a Namespace resource into its creation body
func (r *Resource) Namespace() *types.Namespace {
	return &types.Namespace{Name: r.Metadata.Name}
}

// Configmap converts a ConfigMap resource into its creation body
func (r *Resource) Configmap() *types.Configmap {
	return &types.Configmap{
		Name:      r.Metadata.Name,
		Namespace: r.Metadata.Namespace,
		Data:      r.Data,
	}
}

// Service converts a Service resource into its creation body
func (r *Resource) Service() (*types.Service, error) {
	var spec serviceSpec
	if err := r.decodeSpec(&spec); err != nil {
		return nil, err
	}

	svc := &types.Service{
		Name:      r.Metadata.Name,
		Namespace: r.Metadata.Namespace,
		Type:      spec.Type,
		Selector:  spec.Selector,
		ClusterIP: spec.ClusterIP,
	}
	if svc.Type == "" {
		svc.Type = "ClusterIP"
	}
	for _, p := range spec.Ports {
		if p.Port <= 0 {
			return nil, fmt.Errorf("service %s: port must be positive", r.Metadata.Name)
		}
		port := types.ServicePort{
			Name:       p.Name,
			Protocol:   p.Protocol,
			Port:       p.Port,
			TargetPort: p.TargetPort,
			NodePort:   p.NodePort,
		}
		if port.Protocol == "" {
			port.Protocol = "TCP"
		}
		if port.TargetPort == 0 {
			port.TargetPort = port.Port
		}
		svc.Ports = append(svc.Ports, port)
	}
	return svc, nil
}

// Pod converts a Pod resource into its creation body
func (r *Resource) Pod() (*types.PodRequest, error) {
	var spec podSpec
	if err := r.decodeSpec(&spec); err != nil {
		return nil, err
	}
	if err := validateContainers(r, spec.Containers); err != nil {
		return nil, err
	}
	return &types.PodRequest{
		Name:       r.Metadata.Name,
		Namespace:  r.Metadata.Namespace,
		Labels:     r.Metadata.Labels,
		Containers: spec.Containers,
		NodeName:   spec.NodeName,
	}, nil
}

// Deployment converts a Deployment resource into its creation body.
// Replicas defaults to 1.
func (r *Resource) Deployment() (*types.DeploymentRequest, error) {
	var spec deploymentSpec
	if err := r.decodeSpec(&spec); err != nil {
		return nil, err
	}
	if err := validateContainers(r, spec.Containers); err != nil {
		return nil, err
	}

	replicas := 1
	if spec.Replicas != nil {
		replicas = *spec.Replicas
	}
	if replicas < 0 {
		return nil, fmt.Errorf("deployment %s: replicas must not be negative", r.Metadata.Name)
	}

	return &types.DeploymentRequest{
		Name:       r.Metadata.Name,
		Namespace:  r.Metadata.Namespace,
		Replicas:   replicas,
		Labels:     r.Metadata.Labels,
		Containers: spec.Containers,
		Networks:   spec.Networks,
		Volumes:    spec.Volumes,
		Configmaps: spec.Configmaps,
	}, nil
}

func validateContainers(r *Resource, containers []types.ContainerRequest) error {
	if len(containers) == 0 {
		return fmt.Errorf("%s %s: at least one container is required", r.Kind, r.Metadata.Name)
	}
	for i, c := range containers {
		if c.Image == "" {
			return fmt.Errorf("%s %s: container %d: image is required", r.Kind, r.Metadata.Name, i)
		}
		if c.Name == "" {
			containers[i].Name = fmt.Sprintf("%s-%d", r.Metadata.Name, i)
		}
	}
	return nil
}
