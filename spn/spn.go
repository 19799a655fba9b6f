// Package spn implements the 16-bit, 3-round substitution-permutation cipher
// that the accelerator executes. The cipher is illustrative hardware-exercise
// material, not a secure cipher.
package spn

// NumRounds is the number of rounds of the cipher.
const NumRounds = 3

// sbox is the forward 4-bit substitution table, applied independently to each
// nibble of the 16-bit block.
var sbox = [16]uint8{
	0xF, 0x3, 0xE, 0xB, 0x8, 0x7, 0x9, 0xA,
	0xC, 0xD, 0x2, 0x5, 0x1, 0x6, 0x4, 0x0,
}

// invSbox satisfies invSbox[sbox[x]] == x for all x.
var invSbox = [16]uint8{
	0xF, 0xC, 0xA, 0x1, 0xE, 0xB, 0xD, 0x5,
	0x4, 0x6, 0x7, 0x3, 0x8, 0x9, 0x2, 0x0,
}

// RoundKey derives the 16-bit key for one round from the 32-bit secret key.
// The schedule is a fixed byte selection:
//
//	round 0: key[7:0] | key[23:16]
//	round 1: key[15:0]
//	round 2: key[7:0] | key[31:24]
func RoundKey(key uint32, round int) uint16 {
	switch round {
	case 0:
		return uint16(key&0xFF)<<8 | uint16(key>>16&0xFF)
	case 1:
		return uint16(key & 0xFFFF)
	case 2:
		return uint16(key&0xFF)<<8 | uint16(key>>24&0xFF)
	default:
		panic("round out of range")
	}
}

// Substitute applies the forward S-box to each nibble of the block.
func Substitute(x uint16) uint16 {
	return uint16(sbox[x>>12&0xF])<<12 |
		uint16(sbox[x>>8&0xF])<<8 |
		uint16(sbox[x>>4&0xF])<<4 |
		uint16(sbox[x&0xF])
}

// InvSubstitute applies the inverse S-box to each nibble of the block.
func InvSubstitute(x uint16) uint16 {
	return uint16(invSbox[x>>12&0xF])<<12 |
		uint16(invSbox[x>>8&0xF])<<8 |
		uint16(invSbox[x>>4&0xF])<<4 |
		uint16(invSbox[x&0xF])
}

// Permute rotates the block left by 2 bits.
func Permute(x uint16) uint16 {
	return x<<2 | x>>14
}

// InvPermute rotates the block right by 2 bits.
func InvPermute(x uint16) uint16 {
	return x>>2 | x<<14
}

// Encrypt runs the three forward rounds over a block. Each round XORs the
// round key and substitutes; all rounds except the last permute.
func Encrypt(data uint16, key uint32) uint16 {
	d := data

	for r := 0; r < NumRounds; r++ {
		d ^= RoundKey(key, r)
		d = Substitute(d)

		if r != NumRounds-1 {
			d = Permute(d)
		}
	}

	return d
}

// Decrypt is the exact algebraic inverse of Encrypt, undoing the rounds in
// reverse order.
func Decrypt(data uint16, key uint32) uint16 {
	d := data

	for r := NumRounds - 1; r >= 0; r-- {
		if r != NumRounds-1 {
			d = InvPermute(d)
		}

		d = InvSubstitute(d)
		d ^= RoundKey(key, r)
	}

	return d
}
