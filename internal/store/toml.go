package store

import (
	"fmt"

	"github.com/pelletier/go-toml"

	"github.com/CosmWasm/costmodel/types"
)

// tomlDocument is the exported artifact layout:
//
//	[op.compute_sha256_hash]
//	const_param = 1366
//	lin_param = 3
type tomlDocument struct {
	Op map[string]tomlEntry `toml:"op"`
}

type tomlEntry struct {
	ConstParam uint64 `toml:"const_param"`
	LinParam   uint64 `toml:"lin_param"`
}

// ExportTOML renders the table as a TOML document with one section per
// operation.
func ExportTOML(t *types.CostTable) ([]byte, error) {
	doc := tomlDocument{Op: make(map[string]tomlEntry, t.Len())}
	for _, op := range t.Ops() {
		model, err := t.Lookup(op)
		if err != nil {
			return nil, err
		}
		doc.Op[string(op)] = tomlEntry{
			ConstParam: uint64(model.ConstParam),
			LinParam:   uint64(model.LinParam),
		}
	}
	return toml.Marshal(doc)
}

// ImportTOML parses a document produced by ExportTOML. Operation names are
// validated so a typo in a hand-edited file fails the load instead of leaving
// an operation silently uncalibrated.
func ImportTOML(data []byte) (*types.CostTable, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing cost table document: %w", err)
	}
	if len(doc.Op) == 0 {
		return nil, fmt.Errorf("cost table document contains no operations")
	}
	models := make(map[types.CostType]types.QuantizedCostModel, len(doc.Op))
	for name, e := range doc.Op {
		if !types.IsValidCostType(name) {
			return nil, fmt.Errorf("unknown operation %q in cost table document", name)
		}
		models[types.CostType(name)] = types.QuantizedCostModel{
			ConstParam: types.Uint64(e.ConstParam),
			LinParam:   types.Uint64(e.LinParam),
		}
	}
	return types.NewCostTable(models), nil
}
