package geometry

import "fmt"

// ErrUnknownSymbol indicates an element symbol with no entry in the
// periodic table in use.
type ErrUnknownSymbol struct {
	Symbol string
}

func (e *ErrUnknownSymbol) Error() string {
	return fmt.Sprintf("unknown element symbol %q", e.Symbol)
}

// ErrUnknownCharge indicates a nuclear charge with no symbol in the
// periodic table in use.
type ErrUnknownCharge struct {
	Charge float64
}

func (e *ErrUnknownCharge) Error() string {
	return fmt.Sprintf("no element symbol for nuclear charge %g", e.Charge)
}

// PeriodicTable maps element symbols to nuclear charges and back.
// It is immutable after construction; use NewPeriodicTable to substitute
// alternate data (isotope tables, reduced vocabularies) without touching
// builder logic.
type PeriodicTable struct {
	bySymbol map[string]float64
	byCharge map[float64]string
}

// NewPeriodicTable builds a PeriodicTable from a symbol -> nuclear charge
// mapping. The input map is copied. If two symbols share a charge, the
// lexically smaller symbol wins the reverse lookup.
func NewPeriodicTable(bySymbol map[string]float64) *PeriodicTable {
	t := &PeriodicTable{
		bySymbol: make(map[string]float64, len(bySymbol)),
		byCharge: make(map[float64]string, len(bySymbol)),
	}
	for sym, z := range bySymbol {
		t.bySymbol[sym] = z
		if prev, ok := t.byCharge[z]; !ok || sym < prev {
			t.byCharge[z] = sym
		}
	}
	return t
}

// Charge returns the nuclear charge for an element symbol.
func (t *PeriodicTable) Charge(symbol string) (float64, error) {
	z, ok := t.bySymbol[symbol]
	if !ok {
		return 0, &ErrUnknownSymbol{Symbol: symbol}
	}
	return z, nil
}

// Symbol returns the element symbol for a nuclear charge.
func (t *PeriodicTable) Symbol(charge float64) (string, error) {
	sym, ok := t.byCharge[charge]
	if !ok {
		return "", &ErrUnknownCharge{Charge: charge}
	}
	return sym, nil
}

// Len returns the number of known element symbols.
func (t *PeriodicTable) Len() int {
	return len(t.bySymbol)
}

// DefaultPeriodicTable returns the built-in 118-element table.
// Elements 113-118 use their systematic placeholder symbols (Uut, Fl, Uup,
// Lv, Uus, Uuo), matching common XYZ datasets.
func DefaultPeriodicTable() *PeriodicTable {
	return defaultTable
}

var defaultTable = NewPeriodicTable(map[string]float64{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8,
	"F": 9, "Ne": 10, "Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15,
	"S": 16, "Cl": 17, "Ar": 18, "K": 19, "Ca": 20, "Sc": 21, "Ti": 22,
	"V": 23, "Cr": 24, "Mn": 25, "Fe": 26, "Co": 27, "Ni": 28, "Cu": 29,
	"Zn": 30, "Ga": 31, "Ge": 32, "As": 33, "Se": 34, "Br": 35, "Kr": 36,
	"Rb": 37, "Sr": 38, "Y": 39, "Zr": 40, "Nb": 41, "Mo": 42, "Tc": 43,
	"Ru": 44, "Rh": 45, "Pd": 46, "Ag": 47, "Cd": 48, "In": 49, "Sn": 50,
	"Sb": 51, "Te": 52, "I": 53, "Xe": 54, "Cs": 55, "Ba": 56, "La": 57,
	"Ce": 58, "Pr": 59, "Nd": 60, "Pm": 61, "Sm": 62, "Eu": 63, "Gd": 64,
	"Tb": 65, "Dy": 66, "Ho": 67, "Er": 68, "Tm": 69, "Yb": 70, "Lu": 71,
	"Hf": 72, "Ta": 73, "W": 74, "Re": 75, "Os": 76, "Ir": 77, "Pt": 78,
	"Au": 79, "Hg": 80, "Tl": 81, "Pb": 82, "Bi": 83, "Po": 84, "At": 85,
	"Rn": 86, "Fr": 87, "Ra": 88, "Ac": 89, "Th": 90, "Pa": 91, "U": 92,
	"Np": 93, "Pu": 94, "Am": 95, "Cm": 96, "Bk": 97, "Cf": 98, "Es": 99,
	"Fm": 100, "Md": 101, "No": 102, "Lr": 103, "Rf": 104, "Db": 105,
	"Sg": 106, "Bh": 107, "Hs": 108, "Mt": 109, "Ds": 110, "Rg": 111,
	"Cn": 112, "Uut": 113, "Fl": 114, "Uup": 115, "Lv": 116, "Uus": 117,
	"Uuo": 118,
})
