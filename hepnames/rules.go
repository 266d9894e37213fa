package hepnames

import (
	"regexp"
	"strings"

	dojson "github.com/inspirehep/dojson"
	"github.com/inspirehep/dojson/date"
	"github.com/inspirehep/dojson/ref"
	"github.com/inspirehep/dojson/vocab"
)

var (
	looksLikeBAI  = regexp.MustCompile(`^(\w+\.)+\d+`)
	looksLikeCERN = regexp.MustCompile(`(?i)^\d+$|^CER[MN]?-|^CNER-|^CVERN-`)
	nonDigit      = regexp.MustCompile(`\D+`)
)

// idSchemas maps the subfield-9 scheme code to the canonical schema name.
var idSchemas = map[string]string{
	"ARXIV":         "ARXIV",
	"BAI":           "INSPIRE BAI",
	"CERN":          "CERN",
	"DESY":          "DESY",
	"GOOGLESCHOLAR": "GOOGLESCHOLAR",
	"INSPIRE":       "INSPIRE ID",
	"KAKEN":         "KAKEN",
	"ORCID":         "ORCID",
	"RESEARCHID":    "RESEARCHERID",
	"RESEARCHERID":  "RESEARCHERID",
	"SLAC":          "SLAC",
	"SCOPUS":        "SCOPUS",
	"VIAF":          "VIAF",
	"WIKIPEDIA":     "WIKIPEDIA",
}

// idsHEP populates one ids entry per 035 occurrence. When the scheme code is
// absent the schema is guessed from a BAI-looking value; CERN and KAKEN
// values are corrected to their canonical prefixed form.
func idsHEP(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)
	aValue := single(m, "a")

	schema := idSchemas[strings.ToUpper(single(m, "9"))]
	if schema == "" && looksLikeBAI.MatchString(aValue) {
		schema = "INSPIRE BAI"
	}

	switch {
	case schema == "CERN" && looksLikeCERN.MatchString(aValue):
		aValue = "CERN-" + nonDigit.ReplaceAllString(aValue, "")
	case schema == "KAKEN" && aValue != "":
		aValue = "KAKEN-" + aValue
	}

	if schema == "" || aValue == "" {
		return nil, nil
	}
	return map[string]any{"schema": schema, "value": aValue}, nil
}

// idsMARC populates the 035 field. SPIRES ids are diverted into the 970
// field as a side effect; INSPIRE ID and INSPIRE BAI get their short scheme
// codes back.
func idsMARC(acc *dojson.Record, key string, value any) (any, error) {
	result035 := listAt(acc, "035")
	result970 := listAt(acc, "970")

	for _, v := range dojson.ForceList(value) {
		m := dojson.Subfields(v)
		id := dojson.String(m["value"])
		schema := dojson.String(m["schema"])

		switch schema {
		case "SPIRES":
			result970 = append(result970, map[string]any{"a": id})
		case "INSPIRE ID":
			result035 = append(result035, map[string]any{"9": "INSPIRE", "a": id})
		case "INSPIRE BAI":
			result035 = append(result035, map[string]any{"9": "BAI", "a": id})
		default:
			if entry := compact(map[string]any{"9": schema, "a": id}); entry != nil {
				result035 = append(result035, entry)
			}
		}
	}

	if len(result970) > 0 {
		acc.Set("970", result970)
	}
	if len(result035) == 0 {
		return nil, nil
	}
	return result035, nil
}

// nameHEP populates the name key. It also sets the status key (lower-cased
// subfield g) as a side effect.
func nameHEP(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)

	if status := strings.ToLower(single(m, "g")); status != "" {
		acc.Set("status", status)
	}

	return anyOrNil(compact(map[string]any{
		"numeration":     single(m, "b"),
		"preferred_name": single(m, "q"),
		"title":          single(m, "c"),
		"value":          single(m, "a"),
	})), nil
}

// nameMARC and statusMARC share the 100 field: each reads the map already
// accumulated there and fills its own subfields.
func nameMARC(acc *dojson.Record, key string, value any) (any, error) {
	result := mapAt(acc, "100")
	m := dojson.Subfields(value)

	setIf(result, "a", dojson.String(m["value"]))
	setIf(result, "b", dojson.String(m["numeration"]))
	setIf(result, "c", dojson.String(m["title"]))
	setIf(result, "q", dojson.String(m["preferred_name"]))

	return result, nil
}

func statusMARC(acc *dojson.Record, key string, value any) (any, error) {
	result := mapAt(acc, "100")
	setIf(result, "g", dojson.String(value))
	return result, nil
}

// positionsHEP populates one positions entry per 371 occurrence. Repeated
// subfield-z values carry either the literal "current" marker or a numeric
// institution record id, which also sets the curated flag.
func positionsHEP(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)

	curated := false
	current := false
	recid := 0
	for _, el := range dojson.ForceList(m["z"]) {
		s := dojson.String(el)
		if strings.EqualFold(s, "current") {
			current = true
			continue
		}
		id := dojson.MaybeInt(el)
		curated = id != nil
		if curated {
			recid = *id
		}
	}

	var institution map[string]any
	if name := single(m, "a"); name != "" {
		institution = map[string]any{
			"name":             name,
			"curated_relation": curated,
		}
		if r := ref.New(recid, "institutions"); r != nil {
			institution["record"] = r
		}
	}

	rawRank := single(m, "r")
	out := compact(map[string]any{
		"institution": institution,
		"emails":      stringList(m["m"]),
		"old_emails":  stringList(m["o"]),
		"_rank":       rawRank,
		"rank":        vocab.NormalizeRank(rawRank),
		"start_date":  date.Normalize(single(m, "s")),
		"end_date":    date.Normalize(single(m, "t")),
	})
	if out == nil {
		out = map[string]any{}
	}
	out["current"] = current
	return out, nil
}

// rankToMARC is the reverse of the rank vocabulary for the 371 r subfield.
var rankToMARC = map[string]string{
	"JUNIOR":        "JUNIOR",
	"MASTER":        "MAS",
	"PHD":           "PHD",
	"POSTDOC":       "PD",
	"SENIOR":        "SENIOR",
	"STAFF":         "STAFF",
	"UNDERGRADUATE": "UG",
	"VISITOR":       "VISITOR",
}

func positionsMARC(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)

	out := compact(map[string]any{
		"a": dojson.Subfields(m["institution"])["name"],
		"r": rankToMARC[dojson.String(m["rank"])],
		"s": dojson.String(m["start_date"]),
		"t": dojson.String(m["end_date"]),
		"m": m["emails"],
		"o": m["old_emails"],
	})
	if current, _ := m["current"].(bool); current {
		if out == nil {
			out = map[string]any{}
		}
		out["z"] = "Current"
	}
	return anyOrNil(out), nil
}

// otherNamesHEP flattens the repeated subfield-a values of every 400
// occurrence into one list of alternate names.
func otherNamesHEP(acc *dojson.Record, key string, value any) (any, error) {
	names := stringList(dojson.Subfields(value)["a"])
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}

func otherNamesMARC(acc *dojson.Record, key string, value any) (any, error) {
	if s := dojson.String(value); s != "" {
		return map[string]any{"a": s}, nil
	}
	return nil, nil
}

// legacyFieldCodes maps single-letter legacy field codes to INSPIRE terms.
var legacyFieldCodes = map[string]string{
	"a": "Astrophysics",
	"b": "Accelerators",
	"c": "Computing",
	"e": "Experiment-HEP",
	"g": "Gravitation and Cosmology",
	"i": "Instrumentation",
	"l": "Lattice",
	"m": "Math and Math Physics",
	"n": "Theory-Nucl",
	"o": "Other",
	"p": "Phenomenology-HEP",
	"q": "General Physics",
	"t": "Theory-HEP",
	"x": "Experiment-Nucl",
}

// arxivCategoriesHEP populates the arxiv_categories key. It also populates
// the inspire_categories key through side effects: every category code is
// normalized against the arXiv vocabulary first, then the INSPIRE term enum,
// then the legacy single-letter table, and routed into whichever list its
// vocabulary owns. Unrecognized codes are dropped.
func arxivCategoriesHEP(acc *dojson.Record, key string, value any) (any, error) {
	terms, err := vocab.Enumerated("elements/inspire_field")
	if err != nil {
		return nil, dojson.Issues{{
			Path:    key,
			Code:    dojson.CodeDependencyUnavailable,
			Message: "inspire_field vocabulary unavailable",
			Cause:   err,
		}}
	}

	arxivCategories := listAt(acc, "arxiv_categories")
	inspireCategories := listAt(acc, "inspire_categories")

	for _, occ := range dojson.ForceList(value) {
		m := dojson.Subfields(occ)
		for _, el := range dojson.ForceList(m["a"]) {
			raw := dojson.String(el)
			if raw == "" {
				continue
			}

			if c, err := vocab.NormalizeArxivCategory(raw); err != nil {
				return nil, err
			} else if c != "" {
				arxivCategories = append(arxivCategories, c)
				continue
			}

			term := matchTerm(terms, raw)
			if term == "" {
				term = legacyFieldCodes[strings.ToLower(raw)]
			}
			if term != "" {
				inspireCategories = append(inspireCategories, map[string]any{"term": term})
			}
		}
	}

	if len(inspireCategories) > 0 {
		acc.Set("inspire_categories", inspireCategories)
	}
	if len(arxivCategories) == 0 {
		return nil, nil
	}
	return arxivCategories, nil
}

// arxivCategoriesMARC and inspireCategoriesMARC re-encode the two category
// lists as repeated 65017 groups distinguished by their authority marker.
func arxivCategoriesMARC(acc *dojson.Record, key string, value any) (any, error) {
	if s := dojson.String(value); s != "" {
		return map[string]any{"2": "arXiv", "a": s}, nil
	}
	return nil, nil
}

func inspireCategoriesMARC(acc *dojson.Record, key string, value any) (any, error) {
	if term := dojson.String(dojson.Subfields(value)["term"]); term != "" {
		return map[string]any{"2": "INSPIRE", "a": term}, nil
	}
	return nil, nil
}

func publicNotesHEP(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)
	return anyOrNil(compact(map[string]any{
		"source": single(m, "9"),
		"value":  single(m, "a"),
	})), nil
}

func publicNotesMARC(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)
	return anyOrNil(compact(map[string]any{
		"a": dojson.String(m["value"]),
		"9": dojson.String(m["source"]),
	})), nil
}

// sourceHEP appends one verification-source entry per 670 occurrence to the
// already-accumulated list.
func sourceHEP(acc *dojson.Record, key string, value any) (any, error) {
	sources := listAt(acc, "source")
	for _, occ := range dojson.ForceList(value) {
		m := dojson.Subfields(occ)
		entry := compact(map[string]any{
			"name":          single(m, "a"),
			"date_verified": date.Normalize(single(m, "d")),
		})
		if entry != nil {
			sources = append(sources, entry)
		}
	}
	if len(sources) == 0 {
		return nil, nil
	}
	return sources, nil
}

func sourceMARC(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)
	return anyOrNil(compact(map[string]any{
		"a": dojson.String(m["name"]),
		"d": dojson.String(m["date_verified"]),
	})), nil
}

func prizesHEP(acc *dojson.Record, key string, value any) (any, error) {
	if s := single(dojson.Subfields(value), "a"); s != "" {
		return s, nil
	}
	return nil, nil
}

func prizesMARC(acc *dojson.Record, key string, value any) (any, error) {
	if s := dojson.String(value); s != "" {
		return map[string]any{"a": s}, nil
	}
	return nil, nil
}

// experimentsHEP appends to the accumulated experiments list. One 693
// occurrence may bundle several experiment names sharing one start/end year
// and one current marker; record ids pair positionally with names, and a
// short id list pads with "no reference" rather than dropping names.
func experimentsHEP(acc *dojson.Record, key string, value any) (any, error) {
	experiments := listAt(acc, "experiments")

	for _, occ := range dojson.ForceList(value) {
		m := dojson.Subfields(occ)
		if len(m) == 0 {
			continue
		}

		startYear := dojson.MaybeInt(dojson.ForceSingle(m["s"]))
		endYear := dojson.MaybeInt(dojson.ForceSingle(m["d"]))
		current := strings.EqualFold(single(m, "z"), "current")

		recids := dojson.ForceList(m["0"])
		for i, name := range dojson.ForceList(m["e"]) {
			var record *ref.Reference
			if i < len(recids) {
				if id := dojson.MaybeInt(recids[i]); id != nil {
					record = ref.New(*id, "experiments")
				}
			}
			entry := map[string]any{
				"curated_relation": record != nil,
				"current":          current,
				"name":             dojson.String(name),
			}
			if record != nil {
				entry["record"] = record
			}
			if startYear != nil {
				entry["start_year"] = *startYear
			}
			if endYear != nil {
				entry["end_year"] = *endYear
			}
			experiments = append(experiments, entry)
		}
	}

	if len(experiments) == 0 {
		return nil, nil
	}
	return experiments, nil
}

func experimentsMARC(acc *dojson.Record, key string, value any) (any, error) {
	groups := listAt(acc, "693")

	for _, v := range dojson.ForceList(value) {
		m := dojson.Subfields(v)
		if len(m) == 0 {
			continue
		}
		group := compact(map[string]any{
			"e": m["name"],
			"s": m["start_year"],
			"d": m["end_year"],
		})
		if group == nil {
			group = map[string]any{}
		}
		if current, _ := m["current"].(bool); current {
			group["z"] = "current"
		}
		if id := ref.RecID(m["record"]); id != nil {
			group["0"] = *id
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}

	if len(groups) == 0 {
		return nil, nil
	}
	return groups, nil
}

// advisorsHEP populates one advisors entry per 701 occurrence. The
// free-text degree label goes through the degree vocabulary (unmapped labels
// fall back to "other"); the curated flag is true iff subfield y is the
// literal "1".
func advisorsHEP(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)

	entry := map[string]any{
		"degree_type":      vocab.NormalizeDegreeType(single(m, "g")),
		"curated_relation": single(m, "y") == "1",
	}
	if name := single(m, "a"); name != "" {
		entry["name"] = name
	}
	if id := dojson.MaybeInt(dojson.ForceSingle(m["x"])); id != nil {
		if r := ref.New(*id, "authors"); r != nil {
			entry["record"] = r
		}
	}
	return entry, nil
}

// advisorsMARC writes the degree type back as its normalized machine value,
// not the original label.
func advisorsMARC(acc *dojson.Record, key string, value any) (any, error) {
	m := dojson.Subfields(value)

	out := compact(map[string]any{
		"a": dojson.String(m["name"]),
		"g": dojson.String(m["degree_type"]),
	})
	if id := ref.RecID(m["record"]); id != nil {
		if out == nil {
			out = map[string]any{}
		}
		out["x"] = *id
	}
	return anyOrNil(out), nil
}

func nativeNameHEP(acc *dojson.Record, key string, value any) (any, error) {
	if s := single(dojson.Subfields(value), "a"); s != "" {
		return s, nil
	}
	return nil, nil
}

func nativeNameMARC(acc *dojson.Record, key string, value any) (any, error) {
	if s := dojson.String(value); s != "" {
		return map[string]any{"a": s}, nil
	}
	return nil, nil
}

// newRecordHEP populates the new_record key. It also extends the ids key
// through side effects: every 970 occurrence contributes its subfield-a
// values as legacy SPIRES identifiers, while only the last occurrence with a
// non-empty subfield d sets the superseded-by reference.
func newRecordHEP(acc *dojson.Record, key string, value any) (any, error) {
	ids := listAt(acc, "ids")
	newRecord := acc.Get("new_record")

	for _, occ := range dojson.ForceList(value) {
		m := dojson.Subfields(occ)
		for _, el := range dojson.ForceList(m["a"]) {
			if s := dojson.String(el); s != "" {
				ids = append(ids, map[string]any{"schema": "SPIRES", "value": s})
			}
		}
		if id := dojson.MaybeInt(dojson.ForceSingle(m["d"])); id != nil {
			if r := ref.New(*id, "authors"); r != nil {
				newRecord = r
			}
		}
	}

	if len(ids) > 0 {
		acc.Set("ids", ids)
	}
	return newRecord, nil
}

// deletedHEP populates the deleted key. It also populates the stub key
// through side effects. Both flags accumulate with OR across repeated 980
// occurrences: once true, a later occurrence never resets them.
func deletedHEP(acc *dojson.Record, key string, value any) (any, error) {
	deleted, _ := acc.Get("deleted").(bool)
	stub, _ := acc.Get("stub").(bool)

	for _, occ := range dojson.ForceList(value) {
		m := dojson.Subfields(occ)
		deleted = deleted || strings.ToUpper(single(m, "c")) == "DELETED"
		stub = stub || strings.ToUpper(single(m, "a")) != "USEFUL"
	}

	acc.Set("stub", stub)
	return deleted, nil
}

func collectionsMARC(acc *dojson.Record, key string, value any) (any, error) {
	if dojson.String(value) == "Authors" {
		return map[string]any{"a": "HEPNAMES"}, nil
	}
	return nil, nil
}

func deletedMARC(acc *dojson.Record, key string, value any) (any, error) {
	if deleted, _ := value.(bool); deleted {
		return map[string]any{"c": "DELETED"}, nil
	}
	return nil, nil
}

// stubMARC has inverted polarity: the usefulness marker is emitted only when
// the record is NOT a stub.
func stubMARC(acc *dojson.Record, key string, value any) (any, error) {
	if stub, _ := value.(bool); !stub {
		return map[string]any{"a": "USEFUL"}, nil
	}
	return nil, nil
}

// ---- helpers ----

// single extracts the subfield as a single scalar string, collapsing
// repeated values to the first.
func single(m map[string]any, code string) string {
	return dojson.String(dojson.ForceSingle(m[code]))
}

// stringList forces v to a list and keeps its non-empty string forms.
func stringList(v any) []any {
	var out []any
	for _, el := range dojson.ForceList(v) {
		if s := dojson.String(el); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// listAt reads the list accumulated at key, or an empty one.
func listAt(acc *dojson.Record, key string) []any {
	return append([]any(nil), dojson.ForceList(acc.Get(key))...)
}

// mapAt reads the map accumulated at key, or a fresh one.
func mapAt(acc *dojson.Record, key string) map[string]any {
	if m, ok := acc.Get(key).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func setIf(m map[string]any, code, s string) {
	if s != "" {
		m[code] = s
	}
}

// matchTerm finds the canonical term whose case-insensitive form matches.
func matchTerm(terms []string, raw string) string {
	for _, t := range terms {
		if strings.EqualFold(t, raw) {
			return t
		}
	}
	return ""
}

// compact drops empty members (nil, empty string, empty list or map) from a
// rule output. Boolean false is meaningful and is kept. A map left empty
// becomes nil.
func compact(m map[string]any) map[string]any {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
		case string:
			if t == "" {
				delete(m, k)
			}
		case []any:
			if len(t) == 0 {
				delete(m, k)
			}
		case map[string]any:
			if len(t) == 0 {
				delete(m, k)
			}
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// anyOrNil keeps a typed-nil map from leaking into the engine as a non-nil
// result.
func anyOrNil(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}
