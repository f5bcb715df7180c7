package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

type fixedRandom struct {
	value int
	calls []int
}

func (that *fixedRandom) Intn(n int) int {
	that.calls = append(that.calls, n)
	return that.value % n
}

func computerGame(board entity.Board) *entity.Game {
	game := entity.NewGame("bot", entity.ModePlayerVsComputer)
	game.Board = board
	game.Turn = entity.PlayerO
	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Takes the winning cell", func(t *testing.T) {
		// Given: O has two on the top row
		game := computerGame(entity.Board{o, o, e, x, x, e, x, e, e})
		bot := NewBotService(&fixedRandom{})

		// When: the bot moves
		cell, err := bot.MakeTurn(game)

		// Then: it completes the row and wins
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
		assert.Equal(t, entity.PlayerO, game.Winner)
		assert.Equal(t, 1, game.Scores.O)
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both O and X threaten a line
		game := computerGame(entity.Board{x, x, e, o, o, e, e, e, x})
		bot := NewBotService(&fixedRandom{})

		// When: the bot moves
		cell, err := bot.MakeTurn(game)

		// Then: it takes its own win
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
		assert.True(t, game.IsFinished())
	})

	t.Run("Blocks the opponent", func(t *testing.T) {
		// Given: X threatens the top row
		game := computerGame(entity.Board{x, x, e, e, o, e, e, e, e})
		bot := NewBotService(&fixedRandom{})

		// When: the bot moves
		cell, err := bot.MakeTurn(game)

		// Then: it blocks at cell 2 and hands the turn back
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
		assert.Equal(t, o, game.Board[2])
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Takes the center when nothing is threatened", func(t *testing.T) {
		// Given: X opened in a corner
		game := computerGame(entity.Board{x, e, e, e, e, e, e, e, e})
		random := &fixedRandom{}
		bot := NewBotService(random)

		// When: the bot moves
		cell, err := bot.MakeTurn(game)

		// Then: it takes the center without consulting the random source
		require.NoError(t, err)
		assert.Equal(t, entity.CenterCell, cell)
		assert.Empty(t, random.calls)
	})

	t.Run("Picks a random empty cell otherwise", func(t *testing.T) {
		// Given: X holds the center
		game := computerGame(entity.Board{e, e, e, e, x, e, e, e, e})
		random := &fixedRandom{value: 2}
		bot := NewBotService(random)

		// When: the bot moves
		cell, err := bot.MakeTurn(game)

		// Then: it picks among the eight empty cells using the random source
		require.NoError(t, err)
		assert.Equal(t, []int{8}, random.calls)
		assert.Equal(t, 2, cell)
	})

	t.Run("Refuses to move out of turn", func(t *testing.T) {
		// Given: a player vs player game
		game := entity.NewGame("bot", entity.ModePlayerVsPlayer)
		game.Turn = entity.PlayerO
		bot := NewBotService(&fixedRandom{})

		// When: the bot is asked to move
		_, err := bot.MakeTurn(game)

		// Then: it reports that it's not its turn and leaves the board alone
		require.ErrorIs(t, err, ErrNotBotTurn)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Refuses to move on a finished game", func(t *testing.T) {
		// Given: a finished computer game
		game := computerGame(entity.Board{x, x, x, o, o, e, e, e, e})
		game.Status = entity.StatusFinished

		// When: the bot is asked to move
		_, err := NewBotService(nil).MakeTurn(game)

		// Then: it refuses
		require.ErrorIs(t, err, ErrNotBotTurn)
	})
}

func TestFindBestMove(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		mark  entity.Mark
		want  int
	}{
		{"Third cell of a row", entity.Board{o, o, e, e, e, e, e, e, e}, o, 2},
		{"Middle cell of a column", entity.Board{x, e, e, e, e, e, x, e, e}, x, 3},
		{"First cell of a diagonal", entity.Board{e, e, e, e, o, e, e, e, o}, o, 0},
		{"Blocked line is skipped", entity.Board{o, o, x, e, e, e, e, e, e}, o, -1},
		{"First line in table order wins", entity.Board{x, e, x, e, e, e, x, e, x}, x, 1},
		{"No pair", entity.Board{x, o, e, e, e, e, e, e, e}, x, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindBestMove(tt.board, tt.mark))
		})
	}
}
