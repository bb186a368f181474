package um

// platter is a single 32-bit machine word. All arithmetic on a platter
// wraps modulo 2^32, which is exactly what Go's uint32 already does on
// overflow, so no masking is needed anywhere operations combine two of
// these.
type platter uint32

const (
	// platterMax is the all-ones platter, the sentinel Input returns at
	// end of stream.
	platterMax platter = 0xFFFFFFFF
)
