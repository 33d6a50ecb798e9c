package wlchar

import "sort"

// The named-character tables below realize the external data inputs of the
// character layer: the name-to-code-point map for `\[Name]` escapes and the
// code-point classification sets. The full Wolfram Language table has on the
// order of 1100 names; this table carries the subset the tokenizer and
// parser give meaning to, plus the common letterlike names. Names are kept
// sorted so lookup is a binary search.

type longName struct {
	Name  string
	Point CodePoint
}

var longNames = []longName{
	{"Alpha", 0x03B1},
	{"And", 0x2227},
	{"Beta", 0x03B2},
	{"CapitalDelta", 0x0394},
	{"CapitalGamma", 0x0393},
	{"CapitalLambda", 0x039B},
	{"CapitalOmega", 0x03A9},
	{"CapitalPhi", 0x03A6},
	{"CapitalPi", 0x03A0},
	{"CapitalPsi", 0x03A8},
	{"CapitalSigma", 0x03A3},
	{"CapitalTheta", 0x0398},
	{"CapitalXi", 0x039E},
	{"CenterDot", 0x00B7},
	{"Chi", 0x03C7},
	{"CirclePlus", 0x2295},
	{"CircleTimes", 0x2297},
	{"Cross", 0xF4A0},
	{"Degree", 0x00B0},
	{"Delta", 0x03B4},
	{"Divide", 0x00F7},
	{"Element", 0x2208},
	{"Epsilon", 0x03F5},
	{"Equal", 0xF431},
	{"Eta", 0x03B7},
	{"ExponentialE", 0xF74D},
	{"Function", 0xF4A1},
	{"Gamma", 0x03B3},
	{"GreaterEqual", 0x2265},
	{"ImaginaryI", 0xF74E},
	{"ImaginaryJ", 0xF74F},
	{"ImplicitPlus", 0xF39E},
	{"IndentingNewLine", 0xF3A2},
	{"Infinity", 0x221E},
	{"InvisibleComma", 0x2063},
	{"InvisibleTimes", 0x2062},
	{"Iota", 0x03B9},
	{"Kappa", 0x03BA},
	{"Lambda", 0x03BB},
	{"LeftAngleBracket", 0x2329},
	{"LeftArrow", 0x2190},
	{"LeftAssociation", 0xF113},
	{"LeftCeiling", 0x2308},
	{"LeftDoubleBracket", 0x301A},
	{"LeftFloor", 0x230A},
	{"LessEqual", 0x2264},
	{"MediumSpace", 0x205F},
	{"Minus", 0x2212},
	{"Mu", 0x03BC},
	{"NonBreakingSpace", 0x00A0},
	{"Not", 0x00AC},
	{"NotEqual", 0x2260},
	{"Nu", 0x03BD},
	{"Omega", 0x03C9},
	{"Omicron", 0x03BF},
	{"Or", 0x2228},
	{"Phi", 0x03D5},
	{"Pi", 0x03C0},
	{"PlusMinus", 0x00B1},
	{"Psi", 0x03C8},
	{"RawBackslash", 0x005C},
	{"RawDoubleQuote", 0x0022},
	{"RawSpace", 0x0020},
	{"RawTab", 0x0009},
	{"Rho", 0x03C1},
	{"RightAngleBracket", 0x232A},
	{"RightArrow", 0x2192},
	{"RightAssociation", 0xF114},
	{"RightCeiling", 0x2309},
	{"RightDoubleBracket", 0x301B},
	{"RightFloor", 0x230B},
	{"Rule", 0xF522},
	{"RuleDelayed", 0xF51F},
	{"Sigma", 0x03C3},
	{"Sqrt", 0x221A},
	{"Tau", 0x03C4},
	{"Theta", 0x03B8},
	{"ThinSpace", 0x2009},
	{"Times", 0x00D7},
	{"Upsilon", 0x03C5},
	{"Xi", 0x03BE},
	{"Zeta", 0x03B6},
}

// LookupLongName resolves a `\[Name]` escape to its code point.
func LookupLongName(name string) (CodePoint, bool) {
	i := sort.Search(len(longNames), func(i int) bool {
		return longNames[i].Name >= name
	})
	if i < len(longNames) && longNames[i].Name == name {
		return longNames[i].Point, true
	}
	return Unsafe, false
}

// LongNameOf reverses the lookup, for diagnostics.
func LongNameOf(point CodePoint) (string, bool) {
	for _, entry := range longNames {
		if entry.Point == point {
			return entry.Name, true
		}
	}
	return "", false
}
