package state

import "github.com/cuemby/clusterview/pkg/types"

// Action is a phase-tagged event applied by the reducer. Each success variant
// carries the typed payload of exactly one resource kind and operation.
type Action interface {
	Kind() Kind
	Op() Op
	Phase() Phase
}

// Requested marks the start of an operation, before any network I/O
type Requested struct {
	K         Kind
	O         Op
	RequestID string
}

func (a Requested) Kind() Kind   { return a.K }
func (a Requested) Op() Op       { return a.O }
func (a Requested) Phase() Phase { return PhaseRequest }

// Failed reports a transport or logical failure of an operation
type Failed struct {
	K         Kind
	O         Op
	RequestID string
	Err       *Failure
}

func (a Failed) Kind() Kind   { return a.K }
func (a Failed) Op() Op       { return a.O }
func (a Failed) Phase() Phase { return PhaseFailure }

// ErrorCleared drives Errored -> Idle. An empty K clears every kind.
type ErrorCleared struct {
	K Kind
}

func (a ErrorCleared) Kind() Kind   { return a.K }
func (a ErrorCleared) Op() Op       { return OpClearError }
func (a ErrorCleared) Phase() Phase { return PhaseSuccess }

// Restored replaces the cached collections with a checkpointed snapshot
type Restored struct {
	Snapshot *Snapshot
}

func (a Restored) Kind() Kind   { return "" }
func (a Restored) Op() Op       { return OpRestore }
func (a Restored) Phase() Phase { return PhaseSuccess }

// Nodes

// NodesFetched carries the full node collection. Order lists the node names
// as returned by the backend; names missing from Order are sorted after it.
type NodesFetched struct {
	Nodes types.Nodes
	Order []string
}

func (a NodesFetched) Kind() Kind   { return KindNode }
func (a NodesFetched) Op() Op       { return OpFetchAll }
func (a NodesFetched) Phase() Phase { return PhaseSuccess }

// NodeNICsFetched carries the interfaces of a single node
type NodeNICsFetched struct {
	Node string
	NICs types.NICs
}

func (a NodeNICsFetched) Kind() Kind   { return KindNode }
func (a NodeNICsFetched) Op() Op       { return OpFetchNICs }
func (a NodeNICsFetched) Phase() Phase { return PhaseSuccess }

// Pods

type PodsFetched struct {
	Pods  types.Pods
	Order []string
}

func (a PodsFetched) Kind() Kind   { return KindPod }
func (a PodsFetched) Op() Op       { return OpFetchAll }
func (a PodsFetched) Phase() Phase { return PhaseSuccess }

type PodFetched struct {
	Pod *types.Pod
}

func (a PodFetched) Kind() Kind   { return KindPod }
func (a PodFetched) Op() Op       { return OpFetchOne }
func (a PodFetched) Phase() Phase { return PhaseSuccess }

// PodRecordsFetched carries the pod records of the secondary store
type PodRecordsFetched struct {
	Records []types.PodRecord
}

func (a PodRecordsFetched) Kind() Kind   { return KindPod }
func (a PodRecordsFetched) Op() Op       { return OpFetchRecords }
func (a PodRecordsFetched) Phase() Phase { return PhaseSuccess }

// PodCreated acknowledges a creation request. The pod shows up in the
// snapshot with the next pods fetch.
type PodCreated struct {
	Record *types.PodRecord
}

func (a PodCreated) Kind() Kind   { return KindPod }
func (a PodCreated) Op() Op       { return OpCreate }
func (a PodCreated) Phase() Phase { return PhaseSuccess }

// PodRemoved removes a pod record by ID
type PodRemoved struct {
	ID string
}

func (a PodRemoved) Kind() Kind   { return KindPod }
func (a PodRemoved) Op() Op       { return OpDelete }
func (a PodRemoved) Phase() Phase { return PhaseSuccess }

type PodRemovedByName struct {
	Namespace string
	Name      string
}

func (a PodRemovedByName) Kind() Kind   { return KindPod }
func (a PodRemovedByName) Op() Op       { return OpDeleteByName }
func (a PodRemovedByName) Phase() Phase { return PhaseSuccess }

// Containers

type ContainersFetched struct {
	Containers types.Containers
	Order      []string
}

func (a ContainersFetched) Kind() Kind   { return KindContainer }
func (a ContainersFetched) Op() Op       { return OpFetchAll }
func (a ContainersFetched) Phase() Phase { return PhaseSuccess }

type ContainerFetched struct {
	Container *types.Container
}

func (a ContainerFetched) Kind() Kind   { return KindContainer }
func (a ContainerFetched) Op() Op       { return OpFetchOne }
func (a ContainerFetched) Phase() Phase { return PhaseSuccess }

// Services

type ServicesFetched struct {
	Services []types.Service
}

func (a ServicesFetched) Kind() Kind   { return KindService }
func (a ServicesFetched) Op() Op       { return OpFetchAll }
func (a ServicesFetched) Phase() Phase { return PhaseSuccess }

type ServiceCreated struct {
	Service types.Service
}

func (a ServiceCreated) Kind() Kind   { return KindService }
func (a ServiceCreated) Op() Op       { return OpCreate }
func (a ServiceCreated) Phase() Phase { return PhaseSuccess }

type ServiceRemoved struct {
	ID string
}

func (a ServiceRemoved) Kind() Kind   { return KindService }
func (a ServiceRemoved) Op() Op       { return OpDelete }
func (a ServiceRemoved) Phase() Phase { return PhaseSuccess }

// Namespaces

type NamespacesFetched struct {
	Namespaces []types.Namespace
}

func (a NamespacesFetched) Kind() Kind   { return KindNamespace }
func (a NamespacesFetched) Op() Op       { return OpFetchAll }
func (a NamespacesFetched) Phase() Phase { return PhaseSuccess }

type NamespaceCreated struct {
	Namespace types.Namespace
}

func (a NamespaceCreated) Kind() Kind   { return KindNamespace }
func (a NamespaceCreated) Op() Op       { return OpCreate }
func (a NamespaceCreated) Phase() Phase { return PhaseSuccess }

type NamespaceRemoved struct {
	ID string
}

func (a NamespaceRemoved) Kind() Kind   { return KindNamespace }
func (a NamespaceRemoved) Op() Op       { return OpDelete }
func (a NamespaceRemoved) Phase() Phase { return PhaseSuccess }

// Configmaps

type ConfigmapsFetched struct {
	Configmaps []types.Configmap
}

func (a ConfigmapsFetched) Kind() Kind   { return KindConfigmap }
func (a ConfigmapsFetched) Op() Op       { return OpFetchAll }
func (a ConfigmapsFetched) Phase() Phase { return PhaseSuccess }

type ConfigmapCreated struct {
	Configmap types.Configmap
}

func (a ConfigmapCreated) Kind() Kind   { return KindConfigmap }
func (a ConfigmapCreated) Op() Op       { return OpCreate }
func (a ConfigmapCreated) Phase() Phase { return PhaseSuccess }

type ConfigmapRemoved struct {
	ID string
}

func (a ConfigmapRemoved) Kind() Kind   { return KindConfigmap }
func (a ConfigmapRemoved) Op() Op       { return OpDelete }
func (a ConfigmapRemoved) Phase() Phase { return PhaseSuccess }

// Deployments

type DeploymentsFetched struct {
	Deployments types.Deployments
	Order       []string
}

func (a DeploymentsFetched) Kind() Kind   { return KindDeployment }
func (a DeploymentsFetched) Op() Op       { return OpFetchAll }
func (a DeploymentsFetched) Phase() Phase { return PhaseSuccess }

// DeploymentRecordsFetched carries the deployment records of the secondary store
type DeploymentRecordsFetched struct {
	Records []types.DeploymentRecord
}

func (a DeploymentRecordsFetched) Kind() Kind   { return KindDeployment }
func (a DeploymentRecordsFetched) Op() Op       { return OpFetchRecords }
func (a DeploymentRecordsFetched) Phase() Phase { return PhaseSuccess }

type DeploymentCreated struct {
	Record *types.DeploymentRecord
}

func (a DeploymentCreated) Kind() Kind   { return KindDeployment }
func (a DeploymentCreated) Op() Op       { return OpCreate }
func (a DeploymentCreated) Phase() Phase { return PhaseSuccess }

type DeploymentRemoved struct {
	ID string
}

func (a DeploymentRemoved) Kind() Kind   { return KindDeployment }
func (a DeploymentRemoved) Op() Op       { return OpDelete }
func (a DeploymentRemoved) Phase() Phase { return PhaseSuccess }

type Autoscaled struct {
	Request types.AutoscaleRequest
}

func (a Autoscaled) Kind() Kind   { return KindDeployment }
func (a Autoscaled) Op() Op       { return OpAutoscale }
func (a Autoscaled) Phase() Phase { return PhaseSuccess }
