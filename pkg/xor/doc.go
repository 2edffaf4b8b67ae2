/*
Package xor provides light-weight screening of in-memory values and byte streams.

Note that this is NOT encryption, since it is easily reversible.
This falls squarely under the obfuscation category.
It's useful for keeping plain text values out of casual memory scans, since recovering them requires knowledge of the key.

# How it works:

A key is applied to a buffer with a bitwise XOR to every byte.
Once a key byte is used, the screen progresses to the next byte in the key.
When the last byte is used, the first will be used again, operating like a ring buffer.
Applying the same key at the same offset a second time restores the original bytes.

Screen and ScreenAt operate on a buffer in place.
Reader and Writer apply the same screen to every byte that passes through them.

# Size-adaptive screening:

ScreenAligned processes a buffer from its end in chunks taken from a Ladder of widths (8, 4, 2, 1 bytes), XORing each chunk as an integer against the same-width prefix of the key.
This is meant for address-shaped values, where the width of each read and write matters.
A size that the Ladder can't fully consume is rejected with ErrUnsupportedSize before any byte is touched.

# General guidelines:
  - Longer keys are better, but have limited usefulness with a short payload.
  - Using securely generated keys with the OS entropy pool (like with GenKey or GenKeyAndOffset) are better.
  - The same key and offset must be provided to reverse the process.
*/
package xor
