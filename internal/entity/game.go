package entity

import (
	"fmt"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Mode string

const (
	ModePlayerVsPlayer   Mode = "pvp"
	ModePlayerVsComputer Mode = "pvc"
)

const CenterCell = 4

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [9]Mark

type Game struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Winner Mark   `json:"winner"`
	Status string `json:"status"`
	Turn   Mark   `json:"player_turn"`
	Mode   Mode   `json:"mode"`
	Scores Scores `json:"scores"`
}

func NewGame(id string, mode Mode) *Game {
	if !mode.IsValid() {
		mode = ModePlayerVsPlayer
	}

	return &Game{
		ID:     id,
		Board:  Board{},
		Turn:   PlayerX,
		Status: StatusOngoing,
		Mode:   mode,
	}
}

func (that Mode) IsValid() bool {
	return that == ModePlayerVsPlayer || that == ModePlayerVsComputer
}

// DetermineGameResult returns the winner mark, PlayerTie for a full board, or EmptyCell while the game goes on.
func (that *Game) DetermineGameResult() Mark {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return EmptyCell
		}
	}

	return PlayerTie
}

// Play puts the current player's mark on cell. Plays on an occupied or
// out of range cell, or after the game has finished, are ignored and report false.
func (that *Game) Play(cell int) bool {
	if !that.IsOngoing() {
		return false
	}

	if cell < 0 || cell >= len(that.Board) || that.Board[cell] != EmptyCell {
		return false
	}

	mover := that.Turn
	that.Board[cell] = mover

	switch result := that.DetermineGameResult(); result {
	case PlayerX, PlayerO:
		that.Winner = result
		that.Status = StatusFinished
		that.Scores.increment(result)
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
	default:
		that.Turn = mover.Opponent()
	}

	return true
}

// Reset clears the board for another round and keeps the scores.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.Status = StatusOngoing
}

// Restart starts a fresh game: the board is cleared and the scores are zeroed.
func (that *Game) Restart() {
	that.Scores = Scores{}
	that.Reset()
}

func (that *Game) SetMode(mode Mode) bool {
	if !mode.IsValid() {
		return false
	}

	that.Mode = mode
	that.Reset()

	return true
}

func (that *Game) AvailableCells() []int {
	cells := make([]int, 0, len(that.Board))
	for i, cell := range that.Board {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that *Game) StatusMessage() string {
	switch {
	case that.IsOngoing():
		return fmt.Sprintf("Player %s's turn", that.Turn)
	case that.Winner == PlayerTie:
		return "Game ended in a draw!"
	default:
		return fmt.Sprintf("Player %s wins!", that.Winner)
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithComputer() bool {
	return that.Mode == ModePlayerVsComputer
}

// IsComputerTurn reports whether the computer opponent is due to move.
func (that *Game) IsComputerTurn() bool {
	return that.IsOngoing() && that.IsWithComputer() && that.Turn == PlayerO
}

func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}
