package types

// Nodes maps a node hostname to its record
type Nodes map[string]*Node

// Node represents a cluster node as reported by the backend
type Node struct {
	Detail   NodeDetail    `json:"detail"`
	Resource NodeResources `json:"resource"`
	NICs     NICs          `json:"nics"`
}

// NodeDetail carries identity and version information of a node
type NodeDetail struct {
	Hostname          string            `json:"hostname"`
	CreateAt          int64             `json:"createAt"` // Unix seconds
	Status            string            `json:"status"`
	OS                string            `json:"os"`
	KernelVersion     string            `json:"kernelVersion"`
	KubeproxyVersion  string            `json:"kubeproxyVersion"`
	KubernetesVersion string            `json:"kubernetesVersion"`
	Labels            map[string]string `json:"labels,omitempty"`
}

// NodeResources tracks resource accounting of a node. All quantities are non-negative.
type NodeResources struct {
	// Reserved by scheduled pods
	CPURequests    float64 `json:"cpuRequests"`
	CPULimits      float64 `json:"cpuLimits"`
	MemoryRequests int64   `json:"memoryRequests"`
	MemoryLimits   int64   `json:"memoryLimits"`

	// Schedulable
	AllocatableCPU              float64 `json:"allocatableCPU"`
	AllocatableMemory           int64   `json:"allocatableMemory"`
	AllocatablePods             int64   `json:"allocatablePods"`
	AllocatableEphemeralStorage int64   `json:"allocatableEphemeralStorage"`

	// Total capacity
	CapacityCPU              float64 `json:"capacityCPU"`
	CapacityMemory           int64   `json:"capacityMemory"`
	CapacityPods             int64   `json:"capacityPods"`
	CapacityEphemeralStorage int64   `json:"capacityEphemeralStorage"`
}

// NICType classifies a network interface
type NICType string

const (
	NICTypePhysical NICType = "physical"
	NICTypeVirtual  NICType = "virtual"
)

// NICs maps an interface name to its record
type NICs map[string]*NIC

// NodesNICs maps a node hostname to its tracked interfaces
type NodesNICs map[string]NICs

// NIC is a network interface controller attached to a node or pod
type NIC struct {
	Default bool       `json:"default"`
	Type    NICType    `json:"type"`
	IP      string     `json:"ip"`
	PciID   string     `json:"pciID"`
	Traffic NICTraffic `json:"nicNetworkTraffic"`
}

// Sample is a single timestamped counter reading
type Sample struct {
	Timestamp int64   `json:"timestamp"` // Unix seconds
	Value     float64 `json:"value"`
}

// NICTraffic holds the four telemetry counters of an interface
type NICTraffic struct {
	ReceiveBytesTotal    []Sample `json:"receiveBytesTotal"`
	TransmitBytesTotal   []Sample `json:"transmitBytesTotal"`
	ReceivePacketsTotal  []Sample `json:"receivePacketsTotal"`
	TransmitPacketsTotal []Sample `json:"transmitPacketsTotal"`
}

// Pods maps a pod name to its record
type Pods map[string]*Pod

// PodsNICs maps a pod name to its interfaces
type PodsNICs map[string]NICs

// Pod represents a scheduled pod
type Pod struct {
	PodName      string   `json:"podName"`
	Namespace    string   `json:"namespace"`
	Node         string   `json:"node"`
	Status       string   `json:"status"`
	RestartCount int      `json:"restartCount"`
	CreateAt     int64    `json:"createAt"` // Unix seconds
	Containers   []string `json:"containers"`
	NICs         NICs     `json:"nics"`

	// Metadata is joined from the secondary record store by pod name
	Metadata *PodRecord `json:"metadata,omitempty"`
}

// PodRecord is a pod as persisted by the backend's secondary store
type PodRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	OwnerID   string            `json:"ownerID,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	CreatedAt int64             `json:"createdAt"`
}

// Containers maps a container name to its record
type Containers map[string]*Container

// Container represents a running container inside a pod
type Container struct {
	Detail ContainerDetail `json:"detail"`
}

// ContainerDetail carries container identity and placement
type ContainerDetail struct {
	ContainerName string   `json:"containerName"`
	Pod           string   `json:"pod"`
	Namespace     string   `json:"namespace"`
	Node          string   `json:"node"`
	Image         string   `json:"image"`
	Command       []string `json:"command,omitempty"`
	Status        string   `json:"status"`
	RestartCount  int      `json:"restartCount"`
}

// Service represents a service exposed by the cluster
type Service struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Type      string            `json:"type"`
	Selector  map[string]string `json:"selector,omitempty"`
	Ports     []ServicePort     `json:"ports,omitempty"`
	ClusterIP string            `json:"clusterIP,omitempty"`
	CreatedAt int64             `json:"createdAt"`
}

// ServicePort defines one exposed port
type ServicePort struct {
	Name       string `json:"name,omitempty"`
	Protocol   string `json:"protocol"`
	Port       int    `json:"port"`
	TargetPort int    `json:"targetPort"`
	NodePort   int    `json:"nodePort,omitempty"`
}

// Namespace represents a namespace
type Namespace struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Configmap represents a config map
type Configmap struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt int64             `json:"createdAt"`
}

// Deployments maps a controller name to its record
type Deployments map[string]*Deployment

// Deployment is a workload controller as reported by the orchestrator
type Deployment struct {
	ControllerName    string            `json:"controllerName"`
	Type              string            `json:"type"`
	Namespace         string            `json:"namespace"`
	Replicas          int               `json:"desiredPod"`
	AvailableReplicas int               `json:"currentPod"`
	Labels            map[string]string `json:"labels,omitempty"`
	Pods              []string          `json:"pods,omitempty"`
	CreateAt          int64             `json:"createAt"`
}

// DeploymentRecord is a deployment as persisted by the backend's secondary store
type DeploymentRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Replicas  int    `json:"replicas"`
	CreatedAt int64  `json:"createdAt"`
}

// DeleteEnvelope is the 2xx body returned by delete endpoints. A truthy Error
// flag signals a logical failure even though the transport succeeded.
type DeleteEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// PodRequest is the body of a pod creation request
type PodRequest struct {
	Name       string             `json:"name" yaml:"name"`
	Namespace  string             `json:"namespace" yaml:"namespace"`
	Labels     map[string]string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Containers []ContainerRequest `json:"containers" yaml:"containers"`
	NodeName   string             `json:"nodeName,omitempty" yaml:"nodeName,omitempty"`
}

// ContainerRequest describes one container of a creation request
type ContainerRequest struct {
	Name    string            `json:"name" yaml:"name"`
	Image   string            `json:"image" yaml:"image"`
	Command []string          `json:"command,omitempty" yaml:"command,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// DeploymentRequest is the body of a deployment creation request
type DeploymentRequest struct {
	Name       string             `json:"name" yaml:"name"`
	Namespace  string             `json:"namespace" yaml:"namespace"`
	Replicas   int                `json:"replicas" yaml:"replicas"`
	Labels     map[string]string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Containers []ContainerRequest `json:"containers" yaml:"containers"`
	Networks   []string           `json:"networks,omitempty" yaml:"networks,omitempty"`
	Volumes    []string           `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	Configmaps []string           `json:"configmaps,omitempty" yaml:"configmaps,omitempty"`
}

// AutoscaleRequest changes the replica target of a deployment
type AutoscaleRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Replicas  int    `json:"replicas"`
}
