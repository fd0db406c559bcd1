// Package importer loads items into a catalog in batches, reporting
// progress as it goes.
//
// Every item is validated before the first batch is written, so a bad
// record never leaves a partially imported file behind. Storage failures
// mid-run can, unless the import is atomic; the error reports how many
// items were already stored.
package importer
