package activity

// Job is the top of the ownership chain: Job -> ManufacturingOrder ->
// Operation -> Activity. Activities hold non-owning back-references up
// this chain; the scenario arena owns the objects.
type Job struct {
	id   int64
	name string
}

// NewJob creates a job.
func NewJob(id int64, name string) *Job {
	return &Job{id: id, name: name}
}

func (j *Job) ID() int64    { return j.id }
func (j *Job) Name() string { return j.name }

// ManufacturingOrder groups the operations that produce one item for a job.
type ManufacturingOrder struct {
	id   int64
	job  *Job
	item string
}

// NewManufacturingOrder creates an order owned by job.
func NewManufacturingOrder(id int64, job *Job, item string) *ManufacturingOrder {
	return &ManufacturingOrder{id: id, job: job, item: item}
}

func (o *ManufacturingOrder) ID() int64  { return o.id }
func (o *ManufacturingOrder) Job() *Job  { return o.job }
func (o *ManufacturingOrder) Item() string { return o.item }

// Operation is one routing step of a manufacturing order. It owns the base
// ProductionInfo and the product rules; activities derived from it carry a
// back-reference only.
type Operation struct {
	id    int64
	order *ManufacturingOrder
	name  string

	resourceRequirementCount int
	productionInfo           *ProductionInfo
	productRules             []*ProductRule

	released                  bool
	beingMoved                bool
	batchPredecessorsComplete bool
}

// NewOperation creates an operation with the given requirement count and
// base production info.
func NewOperation(id int64, order *ManufacturingOrder, name string, requirementCount int, info *ProductionInfo) *Operation {
	return &Operation{
		id:                        id,
		order:                     order,
		name:                      name,
		resourceRequirementCount:  requirementCount,
		productionInfo:            info,
		batchPredecessorsComplete: true,
	}
}

func (op *Operation) ID() int64                     { return op.id }
func (op *Operation) Order() *ManufacturingOrder    { return op.order }
func (op *Operation) Name() string                  { return op.name }
func (op *Operation) ResourceRequirementCount() int { return op.resourceRequirementCount }
func (op *Operation) ProductionInfo() *ProductionInfo { return op.productionInfo }
func (op *Operation) ProductRules() []*ProductRule  { return op.productRules }
func (op *Operation) IsReleased() bool              { return op.released }
func (op *Operation) IsBeingMoved() bool            { return op.beingMoved }
func (op *Operation) BatchPredecessorsComplete() bool { return op.batchPredecessorsComplete }

// AddProductRule appends a per-resource override rule.
func (op *Operation) AddProductRule(rule *ProductRule) {
	op.productRules = append(op.productRules, rule)
}

// SetReleased is driven by the surrounding simulation when the operation's
// own gating clears.
func (op *Operation) SetReleased(v bool) { op.released = v }

// SetBeingMoved is driven by the move coordinator.
func (op *Operation) SetBeingMoved(v bool) { op.beingMoved = v }

// SetBatchPredecessorsComplete is driven by predecessor-batch tracking.
func (op *Operation) SetBatchPredecessorsComplete(v bool) { op.batchPredecessorsComplete = v }
