package game

import (
	"testing"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/engine"
	"github.com/toddllm/lan-3d-chess-sub000/internal/testutil"
)

func mustMove(t *testing.T, g *Game, san string) *VerboseMove {
	t.Helper()
	vm, err := g.Move(san, false)
	if err != nil {
		t.Fatalf("move %q: %v", san, err)
	}
	return vm
}

func TestMoveReturnsVerboseRecord(t *testing.T) {
	g := New()
	vm := mustMove(t, g, "e4")

	testutil.AssertEqual(t, vm.Colour, chess.White)
	testutil.AssertEqual(t, vm.From, "e2")
	testutil.AssertEqual(t, vm.To, "e4")
	testutil.AssertEqual(t, vm.Piece, "p")
	testutil.AssertEqual(t, vm.SAN, "e4")
	testutil.AssertEqual(t, vm.LAN, "e2e4")
	testutil.AssertTrue(t, vm.IsBigPawn)
	testutil.AssertFalse(t, vm.IsCapture)
	testutil.AssertEqual(t, vm.Before, engine.InitialFEN)
	testutil.AssertEqual(t, vm.After, g.FEN())
}

func TestMoveRejectsIllegalText(t *testing.T) {
	g := New()
	_, err := g.Move("Ke4", false)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN, "failed move leaves the game alone")
}

func TestMoveCoords(t *testing.T) {
	g := New()
	vm, err := g.MoveCoords("g1", "f3", "")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, vm.SAN, "Nf3")
	testutil.AssertEqual(t, g.Turn(), chess.Black)

	_, err = g.MoveCoords("e7", "e4", "")
	testutil.AssertError(t, err)
}

func TestCaptureRecord(t *testing.T) {
	g := New()
	mustMove(t, g, "e4")
	mustMove(t, g, "d5")
	vm := mustMove(t, g, "exd5")
	testutil.AssertTrue(t, vm.IsCapture)
	testutil.AssertEqual(t, vm.Captured, "p")
	testutil.AssertEqual(t, vm.SAN, "exd5")
}

func TestUndoRebuildsRecord(t *testing.T) {
	g := New()
	mustMove(t, g, "e4")
	vm := mustMove(t, g, "e5")
	fenAfter := g.FEN()

	undone := g.Undo()
	if undone == nil {
		t.Fatal("expected an undone move")
	}
	testutil.AssertEqual(t, undone.SAN, "e5")
	testutil.AssertEqual(t, undone.After, fenAfter)
	testutil.AssertEqual(t, undone.Before, g.FEN())
	testutil.AssertEqual(t, *undone, *vm)

	g.Undo()
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	if g.Undo() != nil {
		t.Error("undo on a fresh game must return nil")
	}
}

func TestHistoryReplay(t *testing.T) {
	g := New()
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bb5"} {
		mustMove(t, g, san)
	}
	fen := g.FEN()
	testutil.AssertEqual(t, g.History(), []string{"e4", "e5", "Nf3", "Nc6", "Bb5"})
	testutil.AssertEqual(t, g.FEN(), fen, "replay must restore the position")

	verbose := g.HistoryVerbose()
	testutil.AssertEqual(t, len(verbose), 5)
	testutil.AssertEqual(t, verbose[0].Before, engine.InitialFEN)
	testutil.AssertEqual(t, verbose[4].After, fen)
	for i := 1; i < len(verbose); i++ {
		testutil.AssertEqual(t, verbose[i].Before, verbose[i-1].After)
	}
}

func TestMovesListsLegalSAN(t *testing.T) {
	g := New()
	moves := g.Moves()
	testutil.AssertEqual(t, len(moves), 20)

	fromE2 := g.MovesFrom("e2")
	testutil.AssertEqual(t, fromE2, []string{"e3", "e4"})
	testutil.AssertEqual(t, len(g.MovesFrom("e5")), 0)
	testutil.AssertEqual(t, len(g.MovesFrom("zz")), 0)
}

func TestMovesVerboseCoversPromotions(t *testing.T) {
	g, err := NewFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	testutil.AssertNoError(t, err)
	var promos int
	for _, vm := range g.MovesVerbose() {
		if vm.IsPromotion {
			promos++
			testutil.AssertTrue(t, vm.Promotion != "")
		}
	}
	testutil.AssertEqual(t, promos, 4)
}

func TestHeadersOrderedBySevenTagRoster(t *testing.T) {
	g := New()
	g.SetHeader("Annotator", "engine")
	g.SetHeader("White", "Ada")
	g.SetHeader("Event", "Lab Match")

	testutil.AssertEqual(t, g.Headers(), [][2]string{
		{"Event", "Lab Match"},
		{"White", "Ada"},
		{"Annotator", "engine"},
	})

	value, ok := g.Header("White")
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, value, "Ada")

	testutil.AssertTrue(t, g.DeleteHeader("White"))
	testutil.AssertFalse(t, g.DeleteHeader("White"))
	_, ok = g.Header("White")
	testutil.AssertFalse(t, ok)
}

func TestCommentsFollowPositions(t *testing.T) {
	g := New()
	g.SetComment("the start")
	mustMove(t, g, "e4")
	g.SetComment("king pawn")

	text, ok := g.Comment()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, text, "king pawn")

	// The comment keys on the position, so it survives undo and redo.
	g.Undo()
	text, ok = g.Comment()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, text, "the start")
	mustMove(t, g, "e4")
	text, _ = g.Comment()
	testutil.AssertEqual(t, text, "king pawn")

	testutil.AssertEqual(t, len(g.Comments()), 2)

	deleted, ok := g.DeleteComment()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, deleted, "king pawn")
	_, ok = g.Comment()
	testutil.AssertFalse(t, ok)
}

func TestLoadClearsStateUnlessPreserved(t *testing.T) {
	g := New()
	g.SetHeader("Event", "Lab Match")
	g.SetComment("the start")

	err := g.Load("8/8/8/8/8/4k3/8/4K3 w - - 0 1", LoadOptions{})
	testutil.AssertNoError(t, err)
	_, ok := g.Header("Event")
	testutil.AssertFalse(t, ok, "load clears headers")
	testutil.AssertEqual(t, len(g.Comments()), 0)

	g.SetHeader("Event", "Lab Match")
	err = g.Load(engine.InitialFEN, LoadOptions{PreserveHeaders: true})
	testutil.AssertNoError(t, err)
	_, ok = g.Header("Event")
	testutil.AssertTrue(t, ok, "PreserveHeaders keeps headers")
}

func TestLoadRejectsBadFEN(t *testing.T) {
	g := New()
	mustMove(t, g, "e4")
	fen := g.FEN()
	testutil.AssertError(t, g.Load("not a fen", LoadOptions{}))
	testutil.AssertEqual(t, g.FEN(), fen)
}

func TestResetAndClear(t *testing.T) {
	g := New()
	mustMove(t, g, "e4")
	g.SetHeader("Event", "Lab Match")
	g.Reset()
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	_, ok := g.Header("Event")
	testutil.AssertFalse(t, ok)

	g.SetHeader("Event", "Lab Match")
	g.Clear(true)
	testutil.AssertEqual(t, g.FEN(), "8/8/8/8/8/8/8/8 w - - 0 1")
	_, ok = g.Header("Event")
	testutil.AssertTrue(t, ok)
}

func TestPieceEditing(t *testing.T) {
	g := New()
	g.Clear(false)
	testutil.AssertNoError(t, g.Put(chess.W(chess.King), "e1"))
	testutil.AssertNoError(t, g.Put(chess.B(chess.King), "e8"))
	testutil.AssertEqual(t, g.Piece("e1"), chess.W(chess.King))
	testutil.AssertEqual(t, g.Piece("e4"), chess.NoPiece)
	testutil.AssertEqual(t, g.Piece("zz"), chess.NoPiece)
	testutil.AssertError(t, g.Put(chess.W(chess.Pawn), "e9"))
	testutil.AssertEqual(t, g.Remove("e1"), chess.W(chess.King))
	testutil.AssertEqual(t, g.Remove("e1"), chess.NoPiece)
}

func TestTerminalDelegates(t *testing.T) {
	g, err := NewFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, g.InCheck())
	testutil.AssertTrue(t, g.IsCheckmate())
	testutil.AssertTrue(t, g.IsGameOver())
	testutil.AssertFalse(t, g.IsStalemate())
	testutil.AssertFalse(t, g.IsDraw())

	g2, err := NewFromFEN("k7/8/8/8/8/8/8/KB6 w - - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, g2.IsInsufficientMaterial())
	testutil.AssertTrue(t, g2.IsDraw())
}
