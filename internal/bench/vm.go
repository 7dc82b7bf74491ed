package bench

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/CosmWasm/costmodel/types"
)

// loopWasm is a minimal wasm module with a single exported function
//
//	(func (export "loop") (param i64)
//	  (loop (br_if 1 (i64.eqz (local.get 0)))
//	        (local.set 0 (i64.sub (local.get 0) (i64.const 1)))
//	        (br 0)))
//
// so one call executes a fixed handful of instructions per requested
// iteration. The bytes are the binary encoding of exactly that module.
var loopWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version
	0x01, 0x05, 0x01, 0x60, 0x01, 0x7e, 0x00, // type: (i64) -> ()
	0x03, 0x02, 0x01, 0x00, // function: one func of type 0
	0x07, 0x08, 0x01, 0x04, 0x6c, 0x6f, 0x6f, 0x70, 0x00, 0x00, // export "loop"
	0x0a, 0x15, 0x01, 0x13, 0x00, // code section, one body, no locals
	0x03, 0x40, // loop
	0x20, 0x00, // local.get 0
	0x50,       // i64.eqz
	0x0d, 0x01, // br_if 1
	0x20, 0x00, // local.get 0
	0x42, 0x01, // i64.const 1
	0x7d,       // i64.sub
	0x21, 0x00, // local.set 0
	0x0c, 0x00, // br 0
	0x0b, // end loop
	0x0b, // end body
}

// NewWasmInsnExecSource measures executing wasm instructions through the
// interpreter, sized by the loop iteration count.
func NewWasmInsnExecSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostWasmInsnExec,
		cfg: cfg,
		setup: func(ctx context.Context, size uint64) (func() error, func(), error) {
			// The interpreter keeps the measurement portable; a compiling
			// runtime would fold the whole loop into a few native ops.
			rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
			mod, err := rt.Instantiate(ctx, loopWasm)
			if err != nil {
				rt.Close(ctx)
				return nil, nil, err
			}
			fn := mod.ExportedFunction("loop")
			run := func() error {
				_, err := fn.Call(ctx, size)
				return err
			}
			cleanup := func() { rt.Close(ctx) }
			return run, cleanup, nil
		},
	}
}
