// Package source loads radar entries from spreadsheets, files, and
// databases.
//
// # Sources
//
// Every loader implements [Source] and returns a [Document]:
//
//   - [HTTPSource]: a CSV export or a published HTML table, fetched with
//     retries and cached under source: keys
//   - [FileSource]: a local .csv, .html, .yaml, or .json file
//   - [SampleSource]: the built-in sample radar
//   - mongo.Source (subpackage): a MongoDB collection
//
// # Fallback chain
//
// [Chain] tries sources in order and returns the first one that produces at
// least one entry. Failures are logged as warnings. When every source fails
// the error carries the SOURCE_UNAVAILABLE code and wraps the last failure.
// [NewChain] builds the standard order from [Settings]:
//
//  1. CSV URL directly
//  2. CSV URL through each proxy
//  3. HTML URL through each proxy
//  4. HTML URL directly
//  5. local file
//  6. sample data
//
// # Tabular input
//
// CSV and HTML tables share one row model. Headers are trimmed and
// lower-cased. The columns name, quadrant, ring, description, isnew and
// status map onto [radar.Entry]; any other column is kept in Entry.Extra.
// Rows shorter than the header or without a name are dropped.
//
// [Dataset] turns a Document into a validated [radar.Dataset], applying the
// configured ring and quadrant lists.
package source
