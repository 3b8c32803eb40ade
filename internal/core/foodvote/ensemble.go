package foodvote

import "nutriscope/internal/core/labelnorm"

// Vote is one prediction from one ensemble member
type Vote struct {
	Label      string
	Confidence float64
}

// Tally is the outcome of an election
type Tally struct {
	// Label is the winner as first reported, before normalization
	Label string
	// Key is the normalized winner
	Key string
	// Count is how many qualifying votes the winner received
	Count int
	// Mean is the mean confidence over every qualifying vote, not only the winner's
	Mean float64
	// Qualifying is the number of votes at or above the threshold
	Qualifying int
}

// MinAgreement is the number of qualifying votes a label needs to win
const MinAgreement = 2

// Elect runs a plurality vote over votes, given in member order then prediction order.
// Votes under threshold are discarded. Ties go to the label seen first.
// ok is false when no label reaches MinAgreement or the mean falls under threshold
func Elect(votes []Vote, threshold float64) (t Tally, ok bool) {
	type entry struct {
		label string
		count int
	}
	var (
		order  []string
		byKey  = map[string]*entry{}
		sumCnf float64
	)
	for _, v := range votes {
		if v.Confidence < threshold {
			continue
		}
		t.Qualifying++
		sumCnf += v.Confidence

		k := labelnorm.Normalize(v.Label)
		e, seen := byKey[k]
		if !seen {
			e = &entry{label: v.Label}
			byKey[k] = e
			order = append(order, k)
		}
		e.count++
	}
	if t.Qualifying == 0 {
		return t, false
	}

	t.Mean = sumCnf / float64(t.Qualifying)
	for _, k := range order {
		// first-seen order plus strict > keeps the earliest label on ties
		if e := byKey[k]; e.count > t.Count {
			t.Key, t.Label, t.Count = k, e.label, e.count
		}
	}
	return t, t.Count >= MinAgreement && t.Mean >= threshold
}
