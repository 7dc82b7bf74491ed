package types

// CostType identifies one benchmarked host primitive whose resource cost is
// charged before execution. The string value is the stable identifier used in
// the persisted cost table.
type CostType string

const (
	// CostSha256Hash covers computing a SHA-256 digest, sized by input bytes.
	CostSha256Hash CostType = "compute_sha256_hash"
	// CostKeccak256Hash covers computing a Keccak-256 digest, sized by input bytes.
	CostKeccak256Hash CostType = "compute_keccak256_hash"
	// CostEd25519PubKey covers deriving an ed25519 public key from a seed.
	CostEd25519PubKey CostType = "compute_ed25519_pubkey"
	// CostVerifyEd25519Sig covers verifying an ed25519 signature, sized by message bytes.
	CostVerifyEd25519Sig CostType = "verify_ed25519_sig"
	// CostSecp256k1Sign covers producing a recoverable secp256k1 signature.
	CostSecp256k1Sign CostType = "compute_ecdsa_secp256k1_sig"
	// CostSecp256k1Recover covers recovering a secp256k1 public key from a signature.
	CostSecp256k1Recover CostType = "recover_ecdsa_secp256k1_key"
	// CostBls12381AggregateG1 covers aggregating compressed G1 points, sized by point count.
	CostBls12381AggregateG1 CostType = "bls12_381_aggregate_g1"
	// CostHostMemAlloc covers allocating a host byte buffer, sized by bytes.
	CostHostMemAlloc CostType = "host_mem_alloc"
	// CostHostMemCmp covers comparing two host byte buffers, sized by bytes.
	CostHostMemCmp CostType = "host_mem_cmp"
	// CostHostMemCpy covers copying between host byte buffers, sized by bytes.
	CostHostMemCpy CostType = "host_mem_cpy"
	// CostValSer covers serializing a host value, sized by element count.
	CostValSer CostType = "val_ser"
	// CostValDeser covers deserializing a host value, sized by input bytes.
	CostValDeser CostType = "val_deser"
	// CostVisitObject covers traversing a host object graph, sized by node count.
	CostVisitObject CostType = "visit_object"
	// CostWasmInsnExec covers executing wasm instructions, sized by instruction count.
	CostWasmInsnExec CostType = "wasm_insn_exec"
	// CostPrngDrawBytes covers drawing pseudo-random bytes, sized by bytes.
	CostPrngDrawBytes CostType = "prng_draw_bytes"
	// CostInt256Arith covers overflow-checked 256-bit arithmetic, sized by operand bits.
	CostInt256Arith CostType = "int256_arith"
)

// AllCostTypes lists every operation the calibration tooling knows about, in
// the order entries appear in exported artifacts.
func AllCostTypes() []CostType {
	return []CostType{
		CostSha256Hash,
		CostKeccak256Hash,
		CostEd25519PubKey,
		CostVerifyEd25519Sig,
		CostSecp256k1Sign,
		CostSecp256k1Recover,
		CostBls12381AggregateG1,
		CostHostMemAlloc,
		CostHostMemCmp,
		CostHostMemCpy,
		CostValSer,
		CostValDeser,
		CostVisitObject,
		CostWasmInsnExec,
		CostPrngDrawBytes,
		CostInt256Arith,
	}
}

// IsValidCostType reports whether s names a known operation.
func IsValidCostType(s string) bool {
	for _, ct := range AllCostTypes() {
		if string(ct) == s {
			return true
		}
	}
	return false
}
