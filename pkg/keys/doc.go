/*
Package keys derives the XOR keys used to screen values held in memory.

# Random keys:

A Source is a process-wide random generator guarded by a single mutex.
It's seeded from the OS entropy pool, and every draw is mixed with a sample of the hardware cycle counter.
Keys drawn from a Source are different for every container and aren't constants that could be recovered from the binary.

Shared returns the Source used by default. It's created the first time it's needed, or earlier with an explicit call to Init, and lives for the rest of the process.

# Deterministic keys:

A Tag is an explicit, caller-chosen domain separation token.
Its key is the 128-bit BLAKE2b digest of the tag, so every container using the same Tag computes the same key without storing it.
This is only obfuscation: anybody who knows the tag can compute the key.
*/
package keys
