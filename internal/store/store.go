// Package store persists calibrated cost tables. Two forms are supported: a
// key-value database (the form a host loads at startup) and a TOML document
// (the human-reviewable form checked into configuration repositories). Both
// round-trip the quantized integers exactly.
package store

import (
	"fmt"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/shamaton/msgpack/v2"

	"github.com/CosmWasm/costmodel/types"
)

const (
	entryPrefix = "costmodel/"
	versionKey  = "costmodel_version"
)

// entry is the msgpack wire form of one table entry.
type entry struct {
	ConstParam uint64 `msgpack:"const_param"`
	LinParam   uint64 `msgpack:"lin_param"`
}

// Save replaces the persisted table with t. Old entries are deleted and new
// ones written in a single batch, so a concurrent Load sees either the
// previous table or the new one, never a mix.
func Save(db dbm.DB, t *types.CostTable) error {
	batch := db.NewBatch()
	defer batch.Close()

	existing, err := entryKeys(db)
	if err != nil {
		return err
	}
	for _, key := range existing {
		if err := batch.Delete(key); err != nil {
			return err
		}
	}

	for _, op := range t.Ops() {
		model, err := t.Lookup(op)
		if err != nil {
			return err
		}
		value, err := msgpack.Marshal(entry{
			ConstParam: uint64(model.ConstParam),
			LinParam:   uint64(model.LinParam),
		})
		if err != nil {
			return fmt.Errorf("encoding entry for %s: %w", op, err)
		}
		if err := batch.Set([]byte(entryPrefix+string(op)), value); err != nil {
			return err
		}
	}
	if err := batch.Set([]byte(versionKey), []byte{1}); err != nil {
		return err
	}
	return batch.WriteSync()
}

// Load reads the whole persisted table. A database that was never written to
// returns an error; the host must not run with an implicit empty table.
func Load(db dbm.DB) (*types.CostTable, error) {
	version, err := db.Get([]byte(versionKey))
	if err != nil {
		return nil, err
	}
	if len(version) == 0 {
		return nil, fmt.Errorf("no cost table present in database")
	}

	models := make(map[types.CostType]types.QuantizedCostModel)
	itr, err := db.Iterator([]byte(entryPrefix), prefixEnd(entryPrefix))
	if err != nil {
		return nil, err
	}
	defer itr.Close()
	for ; itr.Valid(); itr.Next() {
		op := types.CostType(itr.Key()[len(entryPrefix):])
		var e entry
		if err := msgpack.Unmarshal(itr.Value(), &e); err != nil {
			return nil, fmt.Errorf("decoding entry for %s: %w", op, err)
		}
		models[op] = types.QuantizedCostModel{
			ConstParam: types.Uint64(e.ConstParam),
			LinParam:   types.Uint64(e.LinParam),
		}
	}
	if err := itr.Error(); err != nil {
		return nil, err
	}
	return types.NewCostTable(models), nil
}

func entryKeys(db dbm.DB) ([][]byte, error) {
	itr, err := db.Iterator([]byte(entryPrefix), prefixEnd(entryPrefix))
	if err != nil {
		return nil, err
	}
	defer itr.Close()
	var keys [][]byte
	for ; itr.Valid(); itr.Next() {
		key := make([]byte, len(itr.Key()))
		copy(key, itr.Key())
		keys = append(keys, key)
	}
	return keys, itr.Error()
}

// prefixEnd returns the smallest key greater than every key with the given
// prefix. The prefix ends in '/', so no carry handling is needed.
func prefixEnd(prefix string) []byte {
	end := []byte(prefix)
	end[len(end)-1]++
	return end
}
