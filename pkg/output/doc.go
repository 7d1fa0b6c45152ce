// Package output implements the rendering and pagination pipeline:
// deciding how results should look based on where stdout points,
// normalizing query results into a lazy sequence, rendering items as
// highlighted or compact JSON, and driving either the interactive
// pager or the non-interactive stream writer.
//
// The pipeline is a single-threaded pull chain: the Pager or
// StreamWriter demands the next item, the Sequence pulls it from the
// driver's cursor, the Renderer turns it into text. Nothing buffers
// more than one page, so unbounded streams (changefeeds) work.
package output
