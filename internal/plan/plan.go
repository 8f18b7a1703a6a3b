package plan

// Phase names, in execution order. Phases exist purely for progress
// reporting; the executor runs every operation in plan order regardless of
// phase boundaries.
const (
	PhaseConfig  = "configuration files"
	PhaseSource  = "source tree"
	PhaseRoot    = "root files"
	PhaseTooling = "developer tooling"
)

var phaseOrder = []string{PhaseConfig, PhaseSource, PhaseRoot, PhaseTooling}

// Phase is a named, contiguous slice of a plan.
type Phase struct {
	Name string
	Ops  []Operation
}

// Plan is an ordered sequence of operations partitioned into phases.
type Plan struct {
	Phases []Phase
}

// Operations returns every operation in plan order.
func (p *Plan) Operations() []Operation {
	var ops []Operation
	for _, ph := range p.Phases {
		ops = append(ops, ph.Ops...)
	}
	return ops
}

// Len returns the total number of operations.
func (p *Plan) Len() int {
	n := 0
	for _, ph := range p.Phases {
		n += len(ph.Ops)
	}
	return n
}

// Dests returns every destination path in plan order.
func (p *Plan) Dests() []string {
	ops := p.Operations()
	dests := make([]string, len(ops))
	for i, op := range ops {
		dests[i] = op.Dest()
	}
	return dests
}

// Contains reports whether any operation targets the given destination.
func (p *Plan) Contains(dest string) bool {
	for _, op := range p.Operations() {
		if op.Dest() == dest {
			return true
		}
	}
	return false
}
