package hepnames

import (
	"sync"

	dojson "github.com/inspirehep/dojson"
)

var registries = sync.OnceValues(func() (*dojson.Registry, *dojson.Registry) {
	hep := dojson.NewRegistry("hepnames")
	hep.MustOver("ids", `^035..`, idsHEP, dojson.ForEach)
	hep.MustOver("name", `^100..`, nameHEP)
	hep.MustOver("positions", `^371..`, positionsHEP, dojson.ForEach)
	hep.MustOver("other_names", `^400..`, otherNamesHEP, dojson.ForEach, dojson.Flatten)
	hep.MustOver("arxiv_categories", `^65017`, arxivCategoriesHEP)
	hep.MustOver("public_notes", `^667..`, publicNotesHEP, dojson.ForEach)
	hep.MustOver("source", `^670..`, sourceHEP)
	hep.MustOver("prizes", `^678..`, prizesHEP, dojson.ForEach)
	hep.MustOver("experiments", `^693..`, experimentsHEP)
	hep.MustOver("advisors", `^701..`, advisorsHEP, dojson.ForEach)
	hep.MustOver("native_name", `^880..`, nativeNameHEP, dojson.ForEach)
	hep.MustOver("new_record", `^970..`, newRecordHEP)
	hep.MustOver("deleted", `^980..`, deletedHEP)

	marc := dojson.NewRegistry("hepnames2marc")
	marc.MustOver("035", `^ids$`, idsMARC)
	marc.MustOver("100", `^name$`, nameMARC)
	marc.MustOver("100", `^status$`, statusMARC)
	marc.MustOver("371", `^positions$`, positionsMARC, dojson.ForEach)
	marc.MustOver("400", `^other_names$`, otherNamesMARC, dojson.ForEach)
	marc.MustOver("65017", `^arxiv_categories$`, arxivCategoriesMARC, dojson.ForEach)
	marc.MustOver("65017", `^inspire_categories$`, inspireCategoriesMARC, dojson.ForEach)
	marc.MustOver("667", `^public_notes$`, publicNotesMARC, dojson.ForEach)
	marc.MustOver("670", `^source$`, sourceMARC, dojson.ForEach)
	marc.MustOver("678", `^prizes$`, prizesMARC, dojson.ForEach)
	marc.MustOver("693", `^experiments$`, experimentsMARC)
	marc.MustOver("701", `^advisors$`, advisorsMARC, dojson.ForEach)
	marc.MustOver("880", `^native_name$`, nativeNameMARC, dojson.ForEach)
	marc.MustOver("980", `^_collections$`, collectionsMARC, dojson.ForEach)
	marc.MustOver("980", `^deleted$`, deletedMARC, dojson.ForEach)
	marc.MustOver("980", `^stub$`, stubMARC, dojson.ForEach)

	return hep, marc
})

// ToHEP converts a tag-coded MARC record into a structured HEPNames record.
func ToHEP(in *dojson.Record) (*dojson.Record, error) {
	hep, _ := registries()
	return hep.Do(in)
}

// ToMARC converts a structured HEPNames record back into its tag-coded
// MARC representation.
func ToMARC(in *dojson.Record) (*dojson.Record, error) {
	_, marc := registries()
	return marc.Do(in)
}
