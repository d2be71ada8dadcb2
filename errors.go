package molfeat

import (
	"errors"
	"fmt"

	"github.com/hupe1980/molfeat/bob"
	"github.com/hupe1980/molfeat/coulomb"
	"github.com/hupe1980/molfeat/geometry"
)

var (
	// ErrNotRepresentable is returned for a molecule without resolved
	// geometry (nil or empty).
	ErrNotRepresentable = errors.New("molecule is not representable")

	// ErrInvalidConfiguration is returned for an unknown variant or
	// inconsistent featurizer parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnknownElement is returned for an element missing from the
	// periodic table in use.
	ErrUnknownElement = errors.New("unknown element")

	// ErrDegenerateGeometry is returned when two distinct atoms coincide,
	// making the Coulomb interaction undefined.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrNoMolecules is returned when a batch call receives no molecules.
	ErrNoMolecules = errors.New("no molecules to represent")
)

// translateError normalizes errors from the builder packages onto the
// package sentinels so callers can branch with errors.Is. The underlying
// error stays reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, geometry.ErrEmptyMolecule) {
		return fmt.Errorf("%w: %w", ErrNotRepresentable, err)
	}

	var unkSym *geometry.ErrUnknownSymbol
	if errors.As(err, &unkSym) {
		return fmt.Errorf("%w: %w", ErrUnknownElement, err)
	}
	var unkChg *geometry.ErrUnknownCharge
	if errors.As(err, &unkChg) {
		return fmt.Errorf("%w: %w", ErrUnknownElement, err)
	}

	var degen *coulomb.ErrDegenerateGeometry
	if errors.As(err, &degen) {
		return fmt.Errorf("%w: %w", ErrDegenerateGeometry, err)
	}

	var unkVar *coulomb.ErrUnknownVariant
	if errors.As(err, &unkVar) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	var invOpts *coulomb.ErrInvalidOptions
	if errors.As(err, &invOpts) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	var exceeded *coulomb.ErrAtomCountExceeded
	if errors.As(err, &exceeded) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	var unplanned *bob.ErrUnplannedKey
	if errors.As(err, &unplanned) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	return err
}
