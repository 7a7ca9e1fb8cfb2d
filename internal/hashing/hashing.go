// Package hashing provides the Zobrist key tables used for incremental
// position hashing and repetition counting.
//
// Keys are generated deterministically from a splitmix64 stream so that the
// same position always hashes to the same value across runs. Two positions
// share a hash exactly when they agree on board contents, side to move,
// castling rights and the en-passant *file*; the en-passant rank is
// deliberately not hashed, matching standard repetition semantics.
package hashing

import (
	"sync"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
)

var (
	once sync.Once

	// pieceKeys is indexed by colour, piece type and raw 0x88 square index.
	// Off-board indices waste table slots but keep the lookup branch-free.
	pieceKeys [2][7][chess.BoardSize]uint64

	// epFileKeys is indexed by the en-passant file, 0-7.
	epFileKeys [8]uint64

	// castlingKeys is indexed by the 4-bit castling-rights mask.
	castlingKeys [16]uint64

	sideKey uint64
)

// splitmix64 seed and multipliers.
const (
	seedGamma = 0x9E3779B97F4A7C15
	mixMul1   = 0xBF58476D1CE4E5B9
	mixMul2   = 0x94D049BB133111EB
)

func initKeys() {
	once.Do(func() {
		seed := uint64(seedGamma)
		next := func() uint64 {
			seed += seedGamma
			z := seed
			z = (z ^ (z >> 30)) * mixMul1
			z = (z ^ (z >> 27)) * mixMul2
			return z ^ (z >> 31)
		}

		for colour := 0; colour < 2; colour++ {
			for pt := int(chess.Pawn); pt <= int(chess.King); pt++ {
				for sq := 0; sq < chess.BoardSize; sq++ {
					pieceKeys[colour][pt][sq] = next()
				}
			}
		}
		for file := 0; file < 8; file++ {
			epFileKeys[file] = next()
		}
		for rights := 0; rights < 16; rights++ {
			castlingKeys[rights] = next()
		}
		sideKey = next()
	})
}

// PieceKey returns the key for a coloured piece standing on sq.
// NoPiece and off-board squares hash to zero so callers can XOR blindly.
func PieceKey(p chess.Piece, sq chess.Square) uint64 {
	if p.IsEmpty() || sq == chess.NoSquare || sq.OffBoard() {
		return 0
	}
	initKeys()
	return pieceKeys[p.Colour()][p.Type()][sq]
}

// EPKey returns the key for an en-passant target square, keyed by file
// only. NoSquare hashes to zero.
func EPKey(sq chess.Square) uint64 {
	if sq == chess.NoSquare || sq.OffBoard() {
		return 0
	}
	initKeys()
	return epFileKeys[sq.File()]
}

// CastlingKey returns the key for a 4-bit castling-rights mask.
func CastlingKey(rights uint8) uint64 {
	initKeys()
	return castlingKeys[rights&0x0f]
}

// SideKey returns the key XORed in when Black is to move.
func SideKey() uint64 {
	initKeys()
	return sideKey
}
