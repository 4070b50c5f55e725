// Package commit applies a list of edit commands to the photo server one
// at a time.
//
// Each command is POSTed, then the edited picture is fetched again and
// swapped into the local collection before the next command starts.
// Nothing runs in parallel and nothing is rolled back: the first failure
// stops the run, and the [Result] says how far it got and what is left.
//
// A 403 from the server surfaces as an error carrying the REAUTHENTICATE
// code; callers check it with errors.NeedsReauth and send the user back to
// the token page.
//
// Runs can be recorded in a [Journal]. [FileJournal] keeps one JSON file
// per run; [MongoJournal] stores runs in a MongoDB collection.
package commit
