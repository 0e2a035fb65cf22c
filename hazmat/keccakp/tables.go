package keccakp

// rc holds the 24 standard Keccak round constants, used in round order 0..23.
// A permutation over a narrower lane width only ever uses the first NR(width)
// of these 24 constants (see F), and each constant is truncated to the lane's
// bit width by the T(rc[i]) conversion in applyRound — so the same table
// serves every lane width.
var rc = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rho holds the per-lane rotation offsets indexed by lane position (5*y+x).
// The effective rotation for a given lane width is rho[k] % width.
var rho = [25]uint8{
	0, 1, 62, 28, 27, 36, 44, 6, 55, 20, 3, 10, 43, 25,
	39, 41, 45, 15, 21, 8, 18, 2, 61, 56, 14,
}

// pi holds the destination lane index for each source lane index k during
// the combined rho/pi step: b[pi[k]] = rotl(a[k]^d, rho[k]).
var pi = [25]uint8{
	0, 10, 20, 5, 15, 16, 1, 11, 21, 6, 7, 17, 2,
	12, 22, 23, 8, 18, 3, 13, 14, 24, 9, 19, 4,
}

// iip1 and iip2 give the two lanes one and two positions ahead of i (within
// its row of five) used by the chi step: a[i] = b[i] ^ (^b[iip1[i]] & b[iip2[i]]).
var iip1 = [25]uint8{
	1, 2, 3, 4, 0, 6, 7, 8, 9, 5, 11, 12, 13, 14, 10,
	16, 17, 18, 19, 15, 21, 22, 23, 24, 20,
}

var iip2 = [25]uint8{
	2, 3, 4, 0, 1, 7, 8, 9, 5, 6, 12, 13, 14, 10, 11,
	17, 18, 19, 15, 16, 22, 23, 24, 20, 21,
}
