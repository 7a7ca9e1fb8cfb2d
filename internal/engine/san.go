package engine

import (
	"regexp"
	"strings"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
)

// SANFromMove renders a legal move in Standard Algebraic Notation,
// including disambiguation and the trailing + or # determined by probing
// the resulting position.
func (p *Position) SANFromMove(m chess.Move) string {
	san := p.sanBody(m, p.LegalMoves())

	p.makeMove(m)
	if p.InCheck() {
		if len(p.LegalMoves()) == 0 {
			san += "#"
		} else {
			san += "+"
		}
	}
	p.undoMove()
	return san
}

// sanBody renders the SAN text without the check suffix. moves is the full
// legal move list used for disambiguation.
func (p *Position) sanBody(m chess.Move, moves []chess.Move) string {
	if m.IsKingsideCastle() {
		return "O-O"
	}
	if m.IsQueensideCastle() {
		return "O-O-O"
	}
	if m.IsNull() {
		return "--"
	}

	var sb strings.Builder
	if m.Piece != chess.Pawn {
		sb.WriteByte(m.Piece.Letter())
		sb.WriteString(disambiguator(m, moves))
	} else if m.IsCapture() {
		sb.WriteByte(m.From.FileChar())
	}
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}
	return sb.String()
}

// disambiguator picks the minimal source hint when several pieces of the
// same type can reach the destination: file if it is unique among the
// ambiguous movers, else rank, else the full source square.
func disambiguator(m chess.Move, moves []chess.Move) string {
	var ambiguities, sameFile, sameRank int
	for _, other := range moves {
		if other.Piece != m.Piece || other.To != m.To || other.From == m.From {
			continue
		}
		ambiguities++
		if other.From.File() == m.From.File() {
			sameFile++
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank++
		}
	}
	switch {
	case ambiguities == 0:
		return ""
	case sameFile > 0 && sameRank > 0:
		return m.From.String()
	case sameFile > 0:
		return string(m.From.RankChar())
	default:
		return string(m.From.FileChar())
	}
}

// stripSAN removes decorations that carry no move information: the
// promotion '=', check symbols and suffix annotations.
func stripSAN(san string) string {
	san = strings.ReplaceAll(san, "=", "")
	return strings.TrimRight(san, "+#?!")
}

// loosePattern extracts the parts of loosely written move text: optional
// piece letter, optional disambiguating file and/or rank, optional capture
// marker, destination square, optional promotion letter.
var loosePattern = regexp.MustCompile(`^([PNBRQK])?([a-h])?([1-8])?[x:]?([a-h][1-8])([qrbnQRBN])?$`)

// MoveFromSAN resolves move text against the current legal moves. Strict
// mode accepts only exact SAN (modulo decorations); lenient mode
// additionally normalizes 0-0 castling spellings and falls back to a
// regex-based loose parse. Unmatched or ambiguous text is an error, never
// a silent substitute.
func (p *Position) MoveFromSAN(text string, strict bool) (chess.Move, error) {
	clean := stripSAN(strings.TrimSpace(text))
	if !strict {
		switch clean {
		case "0-0", "o-o", "OO", "00":
			clean = "O-O"
		case "0-0-0", "o-o-o", "OOO", "000":
			clean = "O-O-O"
		}
	}

	moves := p.LegalMoves()
	for _, m := range moves {
		if stripSAN(p.sanBody(m, moves)) == clean {
			return m, nil
		}
	}
	if strict {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "san %q", text)
	}

	parts := loosePattern.FindStringSubmatch(clean)
	if parts == nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "unparseable move %q", text)
	}
	pieceType := chess.Pawn
	if parts[1] != "" {
		pieceType = chess.PieceTypeFromLetter(parts[1][0])
	}
	to, err := chess.ParseSquare(parts[4])
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "unparseable move %q", text)
	}
	var promotion chess.PieceType
	if parts[5] != "" {
		promotion = chess.PieceTypeFromLetter(parts[5][0])
	}

	var found []chess.Move
	for _, m := range moves {
		if m.Piece != pieceType || m.To != to || m.Promotion != promotion {
			continue
		}
		if parts[2] != "" && m.From.FileChar() != parts[2][0] {
			continue
		}
		if parts[3] != "" && m.From.RankChar() != parts[3][0] {
			continue
		}
		found = append(found, m)
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "move %q", text)
	default:
		return chess.Move{}, errors.Wrapf(errors.ErrAmbiguousMove, "move %q matches %d moves", text, len(found))
	}
}

// MoveFromCoords resolves a from/to square pair (the wire move object
// format) against the current legal moves. A promotion letter is required
// exactly when the matched move promotes.
func (p *Position) MoveFromCoords(from, to string, promotion string) (chess.Move, error) {
	fromSq, err := chess.ParseSquare(from)
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "from square %q", from)
	}
	toSq, err := chess.ParseSquare(to)
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "to square %q", to)
	}
	var promo chess.PieceType
	if promotion != "" {
		promo = chess.PieceTypeFromLetter(promotion[0])
		switch promo {
		case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		default:
			return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "promotion %q", promotion)
		}
	}

	for _, m := range p.LegalMoves() {
		if m.From == fromSq && m.To == toSq && m.Promotion == promo {
			return m, nil
		}
	}
	return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "%s-%s", from, to)
}
