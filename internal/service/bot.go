package service

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
)

var (
	ErrNotBotTurn       = errors.New("it's not the bot's turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)

// Random is the source used to pick among equal moves.
type Random interface {
	Intn(n int) int
}

type BotService interface {
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct {
	random Random
}

func NewBotService(random Random) BotService {
	if random == nil {
		random = rand.New(rand.NewSource(rand.Int63())) //nolint: gosec // it's ok
	}

	return &botService{
		random: random,
	}
}

// MakeTurn plays O's move: win if possible, else block X, else take the
// center, else a random empty cell. It returns the cell played.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	if !game.IsComputerTurn() {
		return -1, ErrNotBotTurn
	}

	cell := that.chooseCell(game)
	if cell < 0 {
		return -1, ErrNoAvailableMoves
	}

	game.Play(cell)

	return cell, nil
}

func (that *botService) chooseCell(game *entity.Game) int {
	if cell := FindBestMove(game.Board, entity.PlayerO); cell >= 0 {
		return cell
	}

	if cell := FindBestMove(game.Board, entity.PlayerX); cell >= 0 {
		return cell
	}

	if game.Board[entity.CenterCell] == entity.EmptyCell {
		return entity.CenterCell
	}

	availableCells := game.AvailableCells()
	if len(availableCells) == 0 {
		return -1
	}

	return availableCells[that.random.Intn(len(availableCells))]
}

// FindBestMove returns the empty cell that completes a line holding two of mark, or -1.
func FindBestMove(board entity.Board, mark entity.Mark) int {
	for _, combo := range entity.WinCombos {
		a, b, c := combo[0], combo[1], combo[2]

		switch {
		case board[a] == mark && board[b] == mark && board[c] == entity.EmptyCell:
			return c
		case board[a] == mark && board[c] == mark && board[b] == entity.EmptyCell:
			return b
		case board[b] == mark && board[c] == mark && board[a] == entity.EmptyCell:
			return a
		}
	}

	return -1
}
