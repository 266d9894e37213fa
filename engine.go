package dojson

// Do runs the registry over in, building the output record incrementally.
//
// Field keys are visited in the input record's own order; a rule reading the
// accumulator therefore sees every write made by rules for earlier fields,
// including side-effect writes to keys it does not own. Keys with no
// matching rule are dropped silently (documented lossy behavior, not an
// error).
//
// Merge semantics at the rule's nominal output key: the result of a ForEach
// rule extends the list already stored there, so that several rules (or
// repeated input groups) can funnel entries into one output field; any other
// non-nil result overwrites, because accumulating rules without ForEach read
// and return the accumulated value themselves. Side-effect writes performed
// directly by a transform are never touched.
func (r *Registry) Do(in *Record) (*Record, error) {
	acc := NewRecord()
	for _, key := range in.Keys() {
		rule, ok := r.Match(key)
		if !ok {
			continue
		}
		res, err := rule.apply(acc, key, in.Get(key))
		if err != nil {
			return nil, err
		}
		if res == nil {
			continue
		}
		merge(acc, rule, res)
	}
	return acc, nil
}

func merge(acc *Record, rule *Rule, res any) {
	if rule.Mods&ForEach != 0 {
		if prev, ok := acc.Lookup(rule.Key); ok {
			if prevList, isList := prev.([]any); isList {
				acc.Set(rule.Key, append(prevList, ForceList(res)...))
				return
			}
		}
	}
	acc.Set(rule.Key, res)
}
