// Package coulomb builds Coulomb interaction matrices and flattens them
// into fixed-width feature vectors.
//
// The Coulomb matrix of a molecule with nuclear charges Z and pairwise
// distances d is the symmetric matrix
//
//	M[i][i] = 0.5 * Z_i^2.4
//	M[i][j] = Z_i * Z_j / d(i,j)   (i != j)
//
// Five flattening variants are supported, selected by a closed Variant
// enumeration:
//
//   - VariantUnsorted (UM): row-major flatten of the padded matrix.
//     Sensitive to input atom order; documented limitation, not a bug.
//   - VariantTriangular (UT): triangular flatten including the diagonal.
//   - VariantEigenspectrum (E): eigenvalues sorted descending.
//     Rotation and permutation invariant by construction.
//   - VariantSorted (SC): rows and columns reordered by descending row
//     L2 norm, then triangular flatten. Permutation invariant.
//   - VariantRandomized (RC): like SC but row norms are perturbed with
//     Gaussian noise before sorting, sampled Permutations times; the
//     flattened samples are concatenated in generation order.
//
// Every molecule in a batch is padded to a shared maximum atom count
// before the variant transform, so all output rows have identical width.
// See Width for the per-variant output widths.
package coulomb
