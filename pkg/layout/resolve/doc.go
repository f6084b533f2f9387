// Package resolve decides a block's height through a fixed priority chain.
//
// # Priority Chain
//
// The first matching tier wins; a tier either returns a resolution or
// falls through:
//
//  1. Intrinsic media: an image in setIntrinsic mode dictates the block
//     height from its aspect ratio at its allotted width. The tallest
//     intrinsic image wins; intrinsic media always precedes an author
//     aspect override.
//  2. Aspect override: an author-set block ratio, legal only when every
//     cell is text or table. An override on an ineligible block is
//     ignored deterministically; the editor reports it.
//  3. Readability enforcement: start from the baseline aspect, ask the
//     typography calculator whether the floor size fits, and grow to the
//     reported required height when it does not.
//  4. Structural failure: no admissible height exists under the author's
//     maximum or the sane upper bound. The resolution carries no usable
//     height, blocks publish, and lists the structural actions that
//     would make the content fit.
//
// Every tier except 4 re-verifies its chosen height through the
// calculator before returning: a height that looks right but fails
// element fit is not acceptable output.
//
// Resolution is pure and deterministic: identical inputs produce the
// identical resolution, so blocks can be resolved in parallel with no
// coordination. "Does not fit yet" is ordinary control flow between
// tiers, never an error; only malformed input errors.
package resolve
