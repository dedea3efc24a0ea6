package extraction

import (
	"github.com/cloudflare/ahocorasick"
)

// marker is a literal phrase that identifies a charge, surcharge or tax line.
type marker uint8

const (
	markerBottleDeposit marker = iota
	markerRecyclingFee
	markerTotal
	markerFuel
	markerDeliverySize
	markerCreditTerms
	markerTaxTotal
	markerTaxColon
	markerCount
)

// markerPhrases is indexed by marker. Matching is case sensitive.
var markerPhrases = [markerCount]string{
	markerBottleDeposit: "BOTTLE DEPOSIT",
	markerRecyclingFee:  "RECYCLING FEE",
	markerTotal:         "TOTAL",
	markerFuel:          "BSTPZ Fuel",
	markerDeliverySize:  "BSTPZ Delivery Size",
	markerCreditTerms:   "BSTPZ Credit Terms",
	markerTaxTotal:      "GST/HST TOTAL",
	markerTaxColon:      "GST/HST:",
}

// markerSet is the set of markers found on one line.
type markerSet uint16

func (s markerSet) has(m marker) bool { return s&(1<<m) != 0 }

// markerScanner finds every marker on a line in a single pass.
// A scanner is not safe for concurrent use.
type markerScanner struct {
	matcher *ahocorasick.Matcher
}

func newMarkerScanner() *markerScanner {
	return &markerScanner{matcher: ahocorasick.NewStringMatcher(markerPhrases[:])}
}

func (s *markerScanner) scan(line string) markerSet {
	var set markerSet
	for _, idx := range s.matcher.Match([]byte(line)) {
		set |= 1 << marker(idx)
	}
	return set
}
