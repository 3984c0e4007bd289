package domain

// MergeStrategy decides what the accepted record looks like after a later
// duplicate of it is seen.
type MergeStrategy func(accepted, duplicate Prospect) Prospect

// FirstWins keeps the accepted record untouched. The worklist uses it.
func FirstWins(accepted, _ Prospect) Prospect {
	return accepted
}

// FillBlanks copies descriptive fields that are absent on the accepted record
// from the duplicate. Present fields, including the status, are never
// overwritten. Identity fields (ids, phones, email) are never copied, so a
// merged record cannot start matching a record it did not match before.
func FillBlanks(accepted, duplicate Prospect) Prospect {
	merged := accepted
	if merged.LeadName == nil {
		merged.LeadName = duplicate.LeadName
	}
	if merged.CustodioName == nil {
		merged.CustodioName = duplicate.CustodioName
	}
	if merged.CallCount == nil {
		merged.CallCount = duplicate.CallCount
	}
	if merged.Transcript == nil {
		merged.Transcript = duplicate.Transcript
	}
	return merged
}

// Dedupe returns one record per person in first-seen order. Each candidate is
// compared only against records already accepted; a candidate judged a
// duplicate is folded in by merge and never compared again. A nil merge means
// FirstWins.
func Dedupe(prospects []Prospect, merge MergeStrategy) []Prospect {
	if merge == nil {
		merge = FirstWins
	}

	unique := make([]Prospect, 0, len(prospects))
	for _, candidate := range prospects {
		matched := false
		for i := range unique {
			if SamePerson(unique[i], candidate) {
				unique[i] = merge(unique[i], candidate)
				matched = true
				break
			}
		}
		if !matched {
			unique = append(unique, candidate)
		}
	}
	return unique
}
