package rules

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	nchess "github.com/corentings/chess/v2"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/testutil"
)

func moveStrings(moves []model.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func oracleMoveStrings(game *nchess.Game) []string {
	moves := game.ValidMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	sort.Strings(out)
	return out
}

// TestLegalMoves_AgreesWithOracle plays seeded random games and checks every
// position against an independent move generator. Only checkmate and stalemate
// are compared at the end since the draw rules differ.
func TestLegalMoves_AgreesWithOracle(t *testing.T) {
	const (
		games    = 20
		maxPlies = 80
	)
	if testing.Short() {
		t.Skip("skipping random playouts in short mode")
	}

	for seed := int64(1); seed <= games; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pos := model.NewPosition()
		game := nchess.NewGame()

		for ply := 0; ply < maxPlies; ply++ {
			ours := LegalMoves(pos)
			if len(ours) == 0 {
				switch status := Classify(pos); status.Kind {
				case model.StatusCheckmate:
					testutil.AssertTrue(t, game.Method() == nchess.Checkmate, fmt.Sprintf("seed %d: oracle method %v, want checkmate", seed, game.Method()))
				case model.StatusStalemate:
					testutil.AssertTrue(t, game.Method() == nchess.Stalemate, fmt.Sprintf("seed %d: oracle method %v, want stalemate", seed, game.Method()))
				default:
					t.Errorf("seed %d: no legal moves but Classify() = %v", seed, status)
				}
				break
			}
			if game.Outcome() != nchess.NoOutcome {
				break
			}

			testutil.AssertEqual(t, moveStrings(ours), oracleMoveStrings(game),
				fmt.Sprintf("seed %d ply %d legal moves", seed, ply))

			m := ours[rng.Intn(len(ours))]
			ok, err := Apply(pos, m, false)
			if err != nil || !ok {
				t.Fatalf("seed %d: Apply(%s) = %v, %v", seed, m, ok, err)
			}
			if err := game.PushNotationMove(m.String(), nchess.UCINotation{}, nil); err != nil {
				t.Fatalf("seed %d: oracle rejected %s: %v", seed, m, err)
			}
		}
	}
}

func TestClassify_AgreesWithOracleOnMate(t *testing.T) {
	pos := model.NewPosition()
	game := nchess.NewGame()

	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		play(t, pos, uci)
		if err := game.PushNotationMove(uci, nchess.UCINotation{}, nil); err != nil {
			t.Fatalf("oracle rejected %s: %v", uci, err)
		}
	}

	if got := Classify(pos); got != model.Checkmate(model.Black) {
		t.Errorf("Classify() = %v, want checkmate for black", got)
	}
	if game.Outcome() != nchess.BlackWon || game.Method() != nchess.Checkmate {
		t.Errorf("oracle outcome = %v by %v, want black win by checkmate", game.Outcome(), game.Method())
	}
}
