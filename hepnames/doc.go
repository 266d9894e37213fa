// Package hepnames converts person records between their tag-coded MARC
// representation and the structured HEPNames JSON shape.
//
// Entry points
//   - ToHEP(marc): run the decode registry over a tag-coded record.
//   - ToMARC(rec): run the encode registry over a structured record.
//
// The two registries are exact inverses modulo documented lossy
// normalization: unknown MARC fields are dropped, identifier values are
// corrected to their canonical form, ranks and degree types pass through
// controlled vocabularies, and a few fields are one-way (legacy SPIRES ids
// arrive as a side effect of the 970 field and leave through the 035 rule;
// the raw _rank and the advisor curated flag do not survive encoding).
//
// Several rules deliberately write accumulator keys beyond their nominal
// output: name also sets status, the category rule fills both category
// lists, 970 extends ids, 980 derives both deleted and stub. Each such
// cross-write is called out on the rule itself.
package hepnames
