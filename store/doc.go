// Package store persists configurations as named profiles.
//
// Each profile is a storagemodels.Snapshot holding the configuration's JSON
// document. In DynamoDB all profiles share the partition key "PROPCONFIG" and
// use "PROFILE#<name>" as sort key. Saves are guarded by the snapshot Version so
// that two writers cannot silently overwrite each other.
package store
