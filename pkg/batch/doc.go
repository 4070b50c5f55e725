// Package batch aggregates metadata across a selection of pictures and
// turns pending edits into an ordered list of edit commands.
//
// A [State] summarizes the selection: for each scalar field it knows the
// shared value or that the value varies; for the location it compares ids;
// for tags and people it keeps the union of active entries, each flagged
// when not every selected picture carries it.
//
// Edits are recorded on the State as pending values. [BuildUpdateList]
// expands them into one scalar command per picture followed by one command
// per pending people and tag change, in selection order.
//
// A [Session] couples a State to a gallery collection and discards pending
// edits whenever the selection changes.
package batch
