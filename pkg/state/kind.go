package state

import "fmt"

// Kind identifies a resource kind held in the snapshot
type Kind string

const (
	KindNode       Kind = "node"
	KindPod        Kind = "pod"
	KindContainer  Kind = "container"
	KindService    Kind = "service"
	KindNamespace  Kind = "namespace"
	KindConfigmap  Kind = "configmap"
	KindDeployment Kind = "deployment"
)

// Kinds lists every resource kind
var Kinds = []Kind{KindNode, KindPod, KindContainer, KindService, KindNamespace, KindConfigmap, KindDeployment}

// Op identifies an operation performed on a resource kind
type Op string

const (
	OpFetchAll     Op = "fetch"
	OpFetchOne     Op = "get"
	OpFetchNICs    Op = "fetch-nics"
	OpFetchRecords Op = "fetch-records"
	OpCreate       Op = "create"
	OpDelete       Op = "delete"
	OpDeleteByName Op = "delete-by-name"
	OpAutoscale    Op = "autoscale"
	OpClearError   Op = "clear-error"
	OpRestore      Op = "restore"
)

// Phase is the lifecycle phase of an operation
type Phase string

const (
	PhaseRequest Phase = "request"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// KindPhase is the per-kind state: Idle -> Loading -> (Loaded | Errored) -> Idle
type KindPhase string

const (
	KindIdle    KindPhase = "idle"
	KindLoading KindPhase = "loading"
	KindLoaded  KindPhase = "loaded"
	KindErrored KindPhase = "errored"
)

// KindStatus tracks the lifecycle of the last operation on a kind
type KindStatus struct {
	Phase KindPhase `json:"phase"`
	Err   *Failure  `json:"error,omitempty"`
}

// Failure is the normalized error carried by failure events
type Failure struct {
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// NewFailure normalizes err into a Failure
func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Failure); ok {
		return f
	}
	return &Failure{Message: err.Error(), Cause: err}
}

func (f *Failure) Error() string {
	if f.Cause != nil && f.Cause.Error() != f.Message {
		return fmt.Sprintf("%s: %v", f.Message, f.Cause)
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Cause
}
