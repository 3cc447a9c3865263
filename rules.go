package html2txt

// CleaningRuleSet enumerates the transforms active for a run.
// It is built once from invocation options and shared by every document.
type CleaningRuleSet struct {
	StripLeadingNumbers      bool
	MergeStripLeadingNumbers bool
	StripAngleButtons        bool
	IncludeURLs              bool
	SectionHeaders           bool
}

// LineRules is the subset of cleaning rules applied by CleanLines.
type LineRules struct {
	StripLeadingNumbers bool
	StripAngleButtons   bool
}

// PerFileRules returns the line rules for per-file outputs.
func (s CleaningRuleSet) PerFileRules() LineRules {
	return LineRules{
		StripLeadingNumbers: s.StripLeadingNumbers,
		StripAngleButtons:   s.StripAngleButtons,
	}
}

// ConsolidatedRules returns the line rules for a consolidated output built
// from freshly extracted text. Either leading-number flag enables stripping,
// which is still applied at most once per line.
func (s CleaningRuleSet) ConsolidatedRules() LineRules {
	return LineRules{
		StripLeadingNumbers: s.StripLeadingNumbers || s.MergeStripLeadingNumbers,
		StripAngleButtons:   s.StripAngleButtons,
	}
}

// MergeRules returns the line rules for merging existing per-file outputs.
// Only the merge-specific leading-number flag is consulted.
func (s CleaningRuleSet) MergeRules() LineRules {
	return LineRules{
		StripLeadingNumbers: s.MergeStripLeadingNumbers,
		StripAngleButtons:   s.StripAngleButtons,
	}
}
