package entity

// GameView is what a view layer renders for a session.
type GameView struct {
	Cells    [9]Mark `json:"cells"`
	Status   string  `json:"status"`
	Scores   Scores  `json:"scores"`
	Mode     Mode    `json:"mode"`
	Turn     Mark    `json:"turn,omitempty"`
	Winner   Mark    `json:"winner,omitempty"`
	Finished bool    `json:"finished"`
}

func (that *Game) View() GameView {
	view := GameView{
		Cells:    that.Board,
		Status:   that.StatusMessage(),
		Scores:   that.Scores,
		Mode:     that.Mode,
		Finished: that.IsFinished(),
	}

	if that.IsOngoing() {
		view.Turn = that.Turn
	} else {
		view.Winner = that.Winner
	}

	return view
}
