package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/CosmWasm/costmodel/types"
)

// hostVal approximates the shape of values the host serializes on behalf of
// contracts: a small record with nested entries.
type hostVal struct {
	Symbol  string      `json:"symbol"`
	Entries []hostEntry `json:"entries"`
}

type hostEntry struct {
	Key   string `json:"key"`
	Value uint64 `json:"value"`
}

// valBytesPerEntry is the approximate serialized footprint of one entry; the
// configured byte sizes are converted to entry counts through it.
const valBytesPerEntry = 32

func makeHostVal(size uint64) hostVal {
	n := size/valBytesPerEntry + 1
	entries := make([]hostEntry, n)
	for i := range entries {
		entries[i] = hostEntry{
			Key:   "key_" + strconv.Itoa(i),
			Value: uint64(i) * 31,
		}
	}
	return hostVal{Symbol: "calibration", Entries: entries}
}

// NewValSerSource measures serializing a host value, sized by its nominal
// byte footprint.
func NewValSerSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostValSer,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			v := makeHostVal(size)
			return func() error {
				data, err := json.Marshal(v)
				if err != nil {
					return err
				}
				bytesSink = data
				return nil
			}, nil, nil
		},
	}
}

// NewValDeserSource measures deserializing a host value produced by the
// serializer at the same nominal size.
func NewValDeserSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostValDeser,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			data, err := json.Marshal(makeHostVal(size))
			if err != nil {
				return nil, nil, err
			}
			return func() error {
				var v hostVal
				return json.Unmarshal(data, &v)
			}, nil, nil
		},
	}
}

// objNode is one node of the host object graph traversed by visit_object.
type objNode struct {
	value    uint64
	children []*objNode
}

// makeObjTree builds a graph of exactly n nodes with small fanout, so the
// traversal cost scales with the node count rather than the depth.
func makeObjTree(n uint64) *objNode {
	root := &objNode{value: 0}
	queue := []*objNode{root}
	built := uint64(1)
	for built < n {
		parent := queue[0]
		queue = queue[1:]
		for i := 0; i < 4 && built < n; i++ {
			child := &objNode{value: built}
			parent.children = append(parent.children, child)
			queue = append(queue, child)
			built++
		}
	}
	return root
}

// NewVisitObjectSource measures traversing a host object graph, sized by node
// count. The configured byte sizes map to node counts one to one.
func NewVisitObjectSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostVisitObject,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			if size == 0 {
				size = 1
			}
			root := makeObjTree(size)
			return func() error {
				var visited uint64
				stack := []*objNode{root}
				for len(stack) > 0 {
					node := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					visited++
					stack = append(stack, node.children...)
				}
				if visited != size {
					return fmt.Errorf("visited %d of %d nodes", visited, size)
				}
				return nil
			}, nil, nil
		},
	}
}
