package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const maxBodySize = 1 << 10

type analyzeRequest struct {
	Board []entity.Mark `json:"board"`
	Mark  entity.Mark   `json:"mark"`
}

type analyzeResponse struct {
	Outcome  string                `json:"outcome"`
	Winner   entity.Mark           `json:"winner,omitempty"`
	BestMove *int                  `json:"best_move,omitempty"`
	Scores   []tictactoe.MoveScore `json:"scores,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type AnalyzeHandler struct {
	logger *slog.Logger
}

func NewAnalyzeHandler(logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger: logger.With("component", "rest", "method", "Analyze"),
	}
}

// Analyze reports the outcome of a board and, if any cell is free,
// the best move and per-cell scores for the given mark.
func (that *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request"})
		return
	}

	board, err := parseBoard(req.Board)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	outcome := tictactoe.DetermineOutcome(board)
	resp := analyzeResponse{
		Outcome: outcome.Result.String(),
		Winner:  outcome.Winner,
	}

	if board.IsFull() {
		that.writeJSON(w, http.StatusOK, resp)
		return
	}

	scores, err := tictactoe.ScoreMoves(board, req.Mark)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	best := tictactoe.PickBest(scores, req.Mark).Cell
	resp.BestMove = &best
	resp.Scores = scores

	that.writeJSON(w, http.StatusOK, resp)
}

func parseBoard(cells []entity.Mark) (*entity.Board, error) {
	if len(cells) != entity.BoardSize {
		return nil, fmt.Errorf("board must have %d cells, got %d", entity.BoardSize, len(cells))
	}

	var board entity.Board
	for i, cell := range cells {
		if cell == entity.EmptyCell {
			continue
		}

		if err := board.Set(i, cell); err != nil {
			return nil, err
		}
	}

	return &board, nil
}

func (that *AnalyzeHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
