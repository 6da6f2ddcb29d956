package dispatch

import (
	"context"

	"github.com/cuemby/clusterview/pkg/state"
	"github.com/cuemby/clusterview/pkg/types"
)

// keyed bundles a keyed collection with the backend's key order
type keyed[M any] struct {
	items M
	order []string
}

func withOrder[M any](list func(context.Context) (M, []string, error)) func(context.Context) (keyed[M], error) {
	return func(ctx context.Context) (keyed[M], error) {
		items, order, err := list(ctx)
		return keyed[M]{items: items, order: order}, err
	}
}

// Nodes

// FetchNodes refreshes every node and merges their interface telemetry
func (d *Dispatcher) FetchNodes(ctx context.Context) error {
	return perform(ctx, d, state.KindNode, state.OpFetchAll,
		withOrder(d.client.ListNodes),
		func(r keyed[types.Nodes]) state.Action {
			return state.NodesFetched{Nodes: r.items, Order: r.order}
		})
}

// FetchNodeNICs refreshes the interfaces of one node
func (d *Dispatcher) FetchNodeNICs(ctx context.Context, node string) error {
	return perform(ctx, d, state.KindNode, state.OpFetchNICs,
		func(ctx context.Context) (types.NICs, error) { return d.client.GetNodeNICs(ctx, node) },
		func(nics types.NICs) state.Action {
			return state.NodeNICsFetched{Node: node, NICs: nics}
		})
}

// Pods

func (d *Dispatcher) FetchPods(ctx context.Context) error {
	return perform(ctx, d, state.KindPod, state.OpFetchAll,
		withOrder(d.client.ListPods),
		func(r keyed[types.Pods]) state.Action {
			return state.PodsFetched{Pods: r.items, Order: r.order}
		})
}

func (d *Dispatcher) FetchPod(ctx context.Context, name string) error {
	return perform(ctx, d, state.KindPod, state.OpFetchOne,
		func(ctx context.Context) (*types.Pod, error) { return d.client.GetPod(ctx, name) },
		func(pod *types.Pod) state.Action { return state.PodFetched{Pod: pod} })
}

func (d *Dispatcher) FetchPodRecords(ctx context.Context) error {
	return perform(ctx, d, state.KindPod, state.OpFetchRecords,
		d.client.ListPodRecords,
		func(records []types.PodRecord) state.Action {
			return state.PodRecordsFetched{Records: records}
		})
}

func (d *Dispatcher) AddPod(ctx context.Context, req *types.PodRequest) error {
	return perform(ctx, d, state.KindPod, state.OpCreate,
		func(ctx context.Context) (*types.PodRecord, error) { return d.client.CreatePod(ctx, req) },
		func(record *types.PodRecord) state.Action { return state.PodCreated{Record: record} })
}

// RemovePod deletes a pod record. A 2xx envelope with its error flag set
// becomes a failure phase.
func (d *Dispatcher) RemovePod(ctx context.Context, id string) error {
	return performNoResult(ctx, d, state.KindPod, state.OpDelete,
		func(ctx context.Context) error { return d.client.DeletePod(ctx, id) },
		func() state.Action { return state.PodRemoved{ID: id} })
}

// RemovePodByName deletes a running pod. The snapshot is left unchanged
// until the next pods fetch.
func (d *Dispatcher) RemovePodByName(ctx context.Context, namespace, name string) error {
	return performNoResult(ctx, d, state.KindPod, state.OpDeleteByName,
		func(ctx context.Context) error { return d.client.DeletePodByName(ctx, namespace, name) },
		func() state.Action { return state.PodRemovedByName{Namespace: namespace, Name: name} })
}

// Containers

func (d *Dispatcher) FetchContainers(ctx context.Context) error {
	return perform(ctx, d, state.KindContainer, state.OpFetchAll,
		withOrder(d.client.ListContainers),
		func(r keyed[types.Containers]) state.Action {
			return state.ContainersFetched{Containers: r.items, Order: r.order}
		})
}

func (d *Dispatcher) FetchContainer(ctx context.Context, name string) error {
	return perform(ctx, d, state.KindContainer, state.OpFetchOne,
		func(ctx context.Context) (*types.Container, error) { return d.client.GetContainer(ctx, name) },
		func(c *types.Container) state.Action { return state.ContainerFetched{Container: c} })
}

// Services

func (d *Dispatcher) FetchServices(ctx context.Context) error {
	return perform(ctx, d, state.KindService, state.OpFetchAll,
		d.client.ListServices,
		func(services []types.Service) state.Action {
			return state.ServicesFetched{Services: services}
		})
}

func (d *Dispatcher) AddService(ctx context.Context, svc *types.Service) error {
	return perform(ctx, d, state.KindService, state.OpCreate,
		func(ctx context.Context) (*types.Service, error) { return d.client.CreateService(ctx, svc) },
		func(created *types.Service) state.Action { return state.ServiceCreated{Service: *created} })
}

func (d *Dispatcher) RemoveService(ctx context.Context, id string) error {
	return performNoResult(ctx, d, state.KindService, state.OpDelete,
		func(ctx context.Context) error { return d.client.DeleteService(ctx, id) },
		func() state.Action { return state.ServiceRemoved{ID: id} })
}

// Namespaces

func (d *Dispatcher) FetchNamespaces(ctx context.Context) error {
	return perform(ctx, d, state.KindNamespace, state.OpFetchAll,
		d.client.ListNamespaces,
		func(namespaces []types.Namespace) state.Action {
			return state.NamespacesFetched{Namespaces: namespaces}
		})
}

func (d *Dispatcher) AddNamespace(ctx context.Context, ns *types.Namespace) error {
	return perform(ctx, d, state.KindNamespace, state.OpCreate,
		func(ctx context.Context) (*types.Namespace, error) { return d.client.CreateNamespace(ctx, ns) },
		func(created *types.Namespace) state.Action { return state.NamespaceCreated{Namespace: *created} })
}

func (d *Dispatcher) RemoveNamespace(ctx context.Context, id string) error {
	return performNoResult(ctx, d, state.KindNamespace, state.OpDelete,
		func(ctx context.Context) error { return d.client.DeleteNamespace(ctx, id) },
		func() state.Action { return state.NamespaceRemoved{ID: id} })
}

// Configmaps

func (d *Dispatcher) FetchConfigmaps(ctx context.Context) error {
	return perform(ctx, d, state.KindConfigmap, state.OpFetchAll,
		d.client.ListConfigmaps,
		func(configmaps []types.Configmap) state.Action {
			return state.ConfigmapsFetched{Configmaps: configmaps}
		})
}

func (d *Dispatcher) AddConfigmap(ctx context.Context, cm *types.Configmap) error {
	return perform(ctx, d, state.KindConfigmap, state.OpCreate,
		func(ctx context.Context) (*types.Configmap, error) { return d.client.CreateConfigmap(ctx, cm) },
		func(created *types.Configmap) state.Action { return state.ConfigmapCreated{Configmap: *created} })
}

func (d *Dispatcher) RemoveConfigmap(ctx context.Context, id string) error {
	return performNoResult(ctx, d, state.KindConfigmap, state.OpDelete,
		func(ctx context.Context) error { return d.client.DeleteConfigmap(ctx, id) },
		func() state.Action { return state.ConfigmapRemoved{ID: id} })
}

// Deployments

func (d *Dispatcher) FetchDeployments(ctx context.Context) error {
	return perform(ctx, d, state.KindDeployment, state.OpFetchAll,
		withOrder(d.client.ListDeployments),
		func(r keyed[types.Deployments]) state.Action {
			return state.DeploymentsFetched{Deployments: r.items, Order: r.order}
		})
}

func (d *Dispatcher) FetchDeploymentRecords(ctx context.Context) error {
	return perform(ctx, d, state.KindDeployment, state.OpFetchRecords,
		d.client.ListDeploymentRecords,
		func(records []types.DeploymentRecord) state.Action {
			return state.DeploymentRecordsFetched{Records: records}
		})
}

func (d *Dispatcher) AddDeployment(ctx context.Context, req *types.DeploymentRequest) error {
	return perform(ctx, d, state.KindDeployment, state.OpCreate,
		func(ctx context.Context) (*types.DeploymentRecord, error) { return d.client.CreateDeployment(ctx, req) },
		func(record *types.DeploymentRecord) state.Action { return state.DeploymentCreated{Record: record} })
}

func (d *Dispatcher) RemoveDeployment(ctx context.Context, id string) error {
	return performNoResult(ctx, d, state.KindDeployment, state.OpDelete,
		func(ctx context.Context) error { return d.client.DeleteDeployment(ctx, id) },
		func() state.Action { return state.DeploymentRemoved{ID: id} })
}

// Autoscale changes the replica target of a deployment. The new target shows
// up with the next deployments fetch.
func (d *Dispatcher) Autoscale(ctx context.Context, req *types.AutoscaleRequest) error {
	return performNoResult(ctx, d, state.KindDeployment, state.OpAutoscale,
		func(ctx context.Context) error { return d.client.Autoscale(ctx, req) },
		func() state.Action { return state.Autoscaled{Request: *req} })
}
