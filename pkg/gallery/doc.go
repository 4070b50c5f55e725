// Package gallery defines the data model shared by every photogrid component.
//
// # Pictures
//
// A [Picture] mirrors the JSON object the photo server returns for one image:
// short three-letter keys for scalar metadata (cap, ts, tz, wmk, cam, ...)
// and three [Entry] collections for tags, people and locations. Tag and
// people entries carry an "act" flag; inactive entries are suggestions the
// server offers for the picture, not facts about it.
//
// # Collections
//
// A browse request returns pictures interleaved with page headers and
// navigation thumbnails. [DecodeBrowse] splits them apart into a
// [Collection], which owns the ordered picture list, the id index and the
// transient selection flags used by batch editing.
//
// # Commands
//
// Every write to the server is a [Command]: one picture id plus a bag of
// form fields. Commands are produced by single edits and by the batch
// aggregator, and are consumed by the REST client and the commit runner.
//
// # Tokens
//
// Access is granted by redeeming codes into tokens that live in the "token"
// cookie. [TokenJar] manipulates that cookie value, and [Level] models the
// permission level each tag grants.
package gallery
