package dojson

// Package dojson provides:
//
// - An ordered Record model shared by the tag-coded (MARC) and structured
//   (JSON) representations of a bibliographic record
// - A rule Registry mapping field-key patterns to transform functions, with
//   for-each-value and flatten modifiers
// - A dispatch engine (Registry.Do) that applies matching rules in input
//   order against a shared accumulator, supporting cross-key side effects
// - One-or-many value primitives (ForceList/ForceSingle/MaybeInt) for the
//   permissive scalar-or-list shapes of the wire format
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep the generic engine in the root package; put domain rule sets under
//   their entity package (hepnames/) and collaborators under ref/, date/,
//   vocab/.
// - Registries are immutable after construction; a single Do pass owns its
//   accumulator exclusively, so passes may run concurrently without locking.
// - Data errors never fail a pass: malformed values degrade to documented
//   fallbacks. Only configuration errors (duplicate rule patterns) and
//   collaborator failures surface as errors.
//
// Typical usage:
//
//  var marc dojson.Record
//  _ = json.Unmarshal(data, &marc)
//  rec, err := hepnames.ToHEP(&marc)
//
//  back, err := hepnames.ToMARC(rec)
//
