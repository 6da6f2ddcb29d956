package client

import (
	"context"

	"github.com/cuemby/clusterview/pkg/types"
)

// Nodes

// ListNodes returns all nodes keyed by hostname together with the backend's key order
func (c *Client) ListNodes(ctx context.Context) (types.Nodes, []string, error) {
	nodes, order, err := getKeyed[*types.Node](ctx, c, "/nodes")
	if err != nil {
		return nil, nil, err
	}
	return types.Nodes(nodes), order, nil
}

// GetNodeNICs returns the interfaces of one node
func (c *Client) GetNodeNICs(ctx context.Context, node string) (types.NICs, error) {
	var nics types.NICs
	if err := c.get(ctx, "/nodes/"+escape(node)+"/nics", &nics); err != nil {
		return nil, err
	}
	return nics, nil
}

// Pods

// ListPods returns all pods keyed by name together with the backend's key order
func (c *Client) ListPods(ctx context.Context) (types.Pods, []string, error) {
	pods, order, err := getKeyed[*types.Pod](ctx, c, "/pods")
	if err != nil {
		return nil, nil, err
	}
	return types.Pods(pods), order, nil
}

// GetPod returns a single pod
func (c *Client) GetPod(ctx context.Context, name string) (*types.Pod, error) {
	pod := &types.Pod{}
	if err := c.get(ctx, "/pods/"+escape(name), pod); err != nil {
		return nil, err
	}
	if pod.PodName == "" {
		pod.PodName = name
	}
	return pod, nil
}

// ListPodRecords returns pod records from the backend's secondary store
func (c *Client) ListPodRecords(ctx context.Context) ([]types.PodRecord, error) {
	var records []types.PodRecord
	if err := c.get(ctx, "/records/pods", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreatePod submits a pod creation request
func (c *Client) CreatePod(ctx context.Context, req *types.PodRequest) (*types.PodRecord, error) {
	record := &types.PodRecord{}
	if err := c.post(ctx, "/pods", req, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeletePod deletes a pod record by ID
func (c *Client) DeletePod(ctx context.Context, id string) error {
	_, err := c.remove(ctx, "/records/pods/"+escape(id))
	return err
}

// DeletePodByName deletes a running pod by namespace and name
func (c *Client) DeletePodByName(ctx context.Context, namespace, name string) error {
	_, err := c.remove(ctx, "/namespaces/"+escape(namespace)+"/pods/"+escape(name))
	return err
}

// Containers

// ListContainers returns all containers keyed by name together with the backend's key order
func (c *Client) ListContainers(ctx context.Context) (types.Containers, []string, error) {
	containers, order, err := getKeyed[*types.Container](ctx, c, "/containers")
	if err != nil {
		return nil, nil, err
	}
	return types.Containers(containers), order, nil
}

// GetContainer returns a single container
func (c *Client) GetContainer(ctx context.Context, name string) (*types.Container, error) {
	container := &types.Container{}
	if err := c.get(ctx, "/containers/"+escape(name), container); err != nil {
		return nil, err
	}
	if container.Detail.ContainerName == "" {
		container.Detail.ContainerName = name
	}
	return container, nil
}

// Services

// ListServices returns all services
func (c *Client) ListServices(ctx context.Context) ([]types.Service, error) {
	var services []types.Service
	if err := c.get(ctx, "/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// CreateService creates a service and returns it as stored
func (c *Client) CreateService(ctx context.Context, svc *types.Service) (*types.Service, error) {
	created := &types.Service{}
	if err := c.post(ctx, "/services", svc, created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteService deletes a service by ID
func (c *Client) DeleteService(ctx context.Context, id string) error {
	_, err := c.remove(ctx, "/services/"+escape(id))
	return err
}

// Namespaces

// ListNamespaces returns all namespaces
func (c *Client) ListNamespaces(ctx context.Context) ([]types.Namespace, error) {
	var namespaces []types.Namespace
	if err := c.get(ctx, "/namespaces", &namespaces); err != nil {
		return nil, err
	}
	return namespaces, nil
}

// CreateNamespace creates a namespace and returns it as stored
func (c *Client) CreateNamespace(ctx context.Context, ns *types.Namespace) (*types.Namespace, error) {
	created := &types.Namespace{}
	if err := c.post(ctx, "/namespaces", ns, created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteNamespace deletes a namespace by ID
func (c *Client) DeleteNamespace(ctx context.Context, id string) error {
	_, err := c.remove(ctx, "/namespaces/"+escape(id))
	return err
}

// Configmaps

// ListConfigmaps returns all config maps
func (c *Client) ListConfigmaps(ctx context.Context) ([]types.Configmap, error) {
	var configmaps []types.Configmap
	if err := c.get(ctx, "/configmaps", &configmaps); err != nil {
		return nil, err
	}
	return configmaps, nil
}

// CreateConfigmap creates a config map and returns it as stored
func (c *Client) CreateConfigmap(ctx context.Context, cm *types.Configmap) (*types.Configmap, error) {
	created := &types.Configmap{}
	if err := c.post(ctx, "/configmaps", cm, created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteConfigmap deletes a config map by ID
func (c *Client) DeleteConfigmap(ctx context.Context, id string) error {
	_, err := c.remove(ctx, "/configmaps/"+escape(id))
	return err
}

// Deployments

// ListDeployments returns all deployments keyed by controller name together with the backend's key order
func (c *Client) ListDeployments(ctx context.Context) (types.Deployments, []string, error) {
	deployments, order, err := getKeyed[*types.Deployment](ctx, c, "/deployments")
	if err != nil {
		return nil, nil, err
	}
	return types.Deployments(deployments), order, nil
}

// ListDeploymentRecords returns deployment records from the backend's secondary store
func (c *Client) ListDeploymentRecords(ctx context.Context) ([]types.DeploymentRecord, error) {
	var records []types.DeploymentRecord
	if err := c.get(ctx, "/records/deployments", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateDeployment submits a deployment creation request
func (c *Client) CreateDeployment(ctx context.Context, req *types.DeploymentRequest) (*types.DeploymentRecord, error) {
	record := &types.DeploymentRecord{}
	if err := c.post(ctx, "/deployments", req, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteDeployment deletes a deployment record by ID
func (c *Client) DeleteDeployment(ctx context.Context, id string) error {
	_, err := c.remove(ctx, "/records/deployments/"+escape(id))
	return err
}

// Autoscale changes the replica target of a deployment
func (c *Client) Autoscale(ctx context.Context, req *types.AutoscaleRequest) error {
	return c.post(ctx, "/deployments/autoscale", req, nil)
}
