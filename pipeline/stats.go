package pipeline

import "github.com/Observe-l/dnastore/packet"

// Stats is the per-packet record and, summed, the run total.
type Stats struct {
	InnerFailures       int
	ErasureBytes        int
	OuterDetected       int
	MaxOuterDetected    int
	OuterUncorrected    int
	MaxOuterUncorrected int
	OuterFailures       int
	Mismatches          int
	// ConstraintViolations is reported beside the eight classic fields.
	ConstraintViolations int
}

// Add returns the field-wise sum of s and o. Max fields are summed too, so
// a run total carries the sum of per-packet maxima.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		InnerFailures:        s.InnerFailures + o.InnerFailures,
		ErasureBytes:         s.ErasureBytes + o.ErasureBytes,
		OuterDetected:        s.OuterDetected + o.OuterDetected,
		MaxOuterDetected:     s.MaxOuterDetected + o.MaxOuterDetected,
		OuterUncorrected:     s.OuterUncorrected + o.OuterUncorrected,
		MaxOuterUncorrected:  s.MaxOuterUncorrected + o.MaxOuterUncorrected,
		OuterFailures:        s.OuterFailures + o.OuterFailures,
		Mismatches:           s.Mismatches + o.Mismatches,
		ConstraintViolations: s.ConstraintViolations + o.ConstraintViolations,
	}
}

func (s Stats) OK() bool { return s.Mismatches == 0 }

// Fields returns the eight report columns in their fixed order.
func (s Stats) Fields() [8]int {
	return [8]int{
		s.InnerFailures, s.ErasureBytes,
		s.OuterDetected, s.MaxOuterDetected,
		s.OuterUncorrected, s.MaxOuterUncorrected,
		s.OuterFailures, s.Mismatches,
	}
}

func withOuter(s Stats, o packet.OuterStats) Stats {
	s.OuterDetected = o.Detected
	s.MaxOuterDetected = o.MaxDetected
	s.OuterUncorrected = o.Uncorrected
	s.MaxOuterUncorrected = o.MaxUncorrected
	s.OuterFailures = o.Failures
	return s
}
