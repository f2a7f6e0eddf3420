package index

import "testing"

func TestKindFromSuffix(t *testing.T) {
	tests := []struct {
		name string
		want RelKind
	}{
		{"SensesOS", OwnsSequence},
		{"AnalysesOC", OwnsCollection},
		{"LexemeFormOA", OwnsAtomic},
		{"MorphTypeRA", RefAtomic},
		{"DomainsRC", RefCollection},
		{"AppendixesRS", RefSequence},
		{"Gloss", Plain},
		{"OS", Plain}, // bare suffix is not a relationship property
		{"", Plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindFromSuffix(tt.name); got != tt.want {
				t.Errorf("KindFromSuffix(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRelKindPredicates(t *testing.T) {
	tests := []struct {
		kind    RelKind
		owning  bool
		ref     bool
		many    bool
		ordered bool
	}{
		{OwnsAtomic, true, false, false, false},
		{OwnsSequence, true, false, true, true},
		{OwnsCollection, true, false, true, false},
		{RefAtomic, false, true, false, false},
		{RefSequence, false, true, true, true},
		{RefCollection, false, true, true, false},
		{Plain, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsOwning(); got != tt.owning {
				t.Errorf("IsOwning() = %v, want %v", got, tt.owning)
			}
			if got := tt.kind.IsReference(); got != tt.ref {
				t.Errorf("IsReference() = %v, want %v", got, tt.ref)
			}
			if got := tt.kind.IsMany(); got != tt.many {
				t.Errorf("IsMany() = %v, want %v", got, tt.many)
			}
			if got := tt.kind.IsOrdered(); got != tt.ordered {
				t.Errorf("IsOrdered() = %v, want %v", got, tt.ordered)
			}
		})
	}
}

func TestRelKindSuffixRoundTrip(t *testing.T) {
	for suf, kind := range relSuffixes {
		if got := kind.Suffix(); got != suf {
			t.Errorf("Suffix(%q) = %q, want %q", kind, got, suf)
		}
	}
	if Plain.Suffix() != "" {
		t.Errorf("Plain.Suffix() = %q, want empty", Plain.Suffix())
	}
}

func TestParseRelKind(t *testing.T) {
	if ParseRelKind("owns_sequence") != OwnsSequence {
		t.Error("owns_sequence should parse")
	}
	if ParseRelKind("unknown_kind") != Plain {
		t.Error("unknown strings should be Plain")
	}
	if ParseRelKind("") != Plain {
		t.Error("empty string should be Plain")
	}
}
