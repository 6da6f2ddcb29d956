package manifest

import (
	"context"
	"fmt"

	"github.com/cuemby/clusterview/pkg/types"
)

// Dispatcher runs the operations an apply needs. *dispatch.Dispatcher
// implements it.
type Dispatcher interface {
	AddNamespace(ctx context.Context, ns *types.Namespace) error
	AddConfigmap(ctx context.Context, cm *types.Configmap) error
	AddService(ctx context.Context, svc *types.Service) error
	AddPod(ctx context.Context, req *types.PodRequest) error
	AddDeployment(ctx context.Context, req *types.DeploymentRequest) error

	FetchNamespaces(ctx context.Context) error
	FetchConfigmaps(ctx context.Context) error
	FetchServices(ctx context.Context) error
	FetchPods(ctx context.Context) error
	FetchPodRecords(ctx context.Context) error
	FetchDeployments(ctx context.Context) error
	FetchDeploymentRecords(ctx context.Context) error
}

// Result reports what an apply created
type Result struct {
	Created []string
	Failed  map[string]error
}

// Apply creates every resource, dependencies first, and then re-fetches the
// kinds it touched. A failed creation does not stop the others; the returned
// error summarizes the failures.
func Apply(ctx context.Context, d Dispatcher, resources []Resource) (*Result, error) {
	result := &Result{Failed: make(map[string]error)}
	touched := make(map[string]bool)

	for _, kind := range applyOrder {
		for i := range resources {
			res := &resources[i]
			if res.Kind != kind {
				continue
			}

			id := fmt.Sprintf("%s/%s", kind, res.Metadata.Name)
			if err := create(ctx, d, res); err != nil {
				result.Failed[id] = err
				continue
			}
			result.Created = append(result.Created, id)
			touched[kind] = true
		}
	}

	for _, kind := range applyOrder {
		if !touched[kind] {
			continue
		}
		for _, fetch := range refetch(d, kind) {
			if err := fetch(ctx); err != nil {
				result.Failed[kind+" refresh"] = err
			}
		}
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%d operations failed", len(result.Failed))
	}
	return result, nil
}

func create(ctx context.Context, d Dispatcher, res *Resource) error {
	switch res.Kind {
	case KindNamespace:
		return d.AddNamespace(ctx, res.Namespace())
	case KindConfigmap:
		return d.AddConfigmap(ctx, res.Configmap())
	case KindService:
		svc, err := res.Service()
		if err != nil {
			return err
		}
		return d.AddService(ctx, svc)
	case KindPod:
		req, err := res.Pod()
		if err != nil {
			return err
		}
		return d.AddPod(ctx, req)
	case KindDeployment:
		req, err := res.Deployment()
		if err != nil {
			return err
		}
		return d.AddDeployment(ctx, req)
	default:
		return fmt.Errorf("unsupported resource kind: %s", res.Kind)
	}
}

func refetch(d Dispatcher, kind string) []func(context.Context) error {
	switch kind {
	case KindNamespace:
		return []func(context.Context) error{d.FetchNamespaces}
	case KindConfigmap:
		return []func(context.Context) error{d.FetchConfigmaps}
	case KindService:
		return []func(context.Context) error{d.FetchServices}
	case KindPod:
		return []func(context.Context) error{d.FetchPods, d.FetchPodRecords}
	case KindDeployment:
		return []func(context.Context) error{d.FetchDeployments, d.FetchDeploymentRecords}
	default:
		return nil
	}
}
