package core

import (
	"errors"
	"fmt"
)

// DefaultSearchLimit bounds the number of positions Solve expands.
const DefaultSearchLimit = 250_000

var (
	// ErrUnsolvable is returned when every reachable position was explored.
	ErrUnsolvable = errors.New("level has no solution")

	// ErrSearchLimit is returned when the position budget runs out first.
	ErrSearchLimit = errors.New("search limit reached")
)

// Solution is a shortest sequence of pours that completes a board.
type Solution struct {
	Moves    []TransferRequest
	Explored int // Positions expanded during the search
}

type searchNode struct {
	bottles []BottleStack
	parent  int
	move    TransferRequest
}

// Solve runs a breadth-first search from b and returns a shortest solution.
// Positions are deduplicated by their canonical key, so bottle order does
// not multiply the search space. limit <= 0 uses DefaultSearchLimit.
// The board is not modified.
func Solve(b *Board, limit int) (Solution, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	start := b.Clone().Bottles
	if IsComplete(start) {
		return Solution{}, nil
	}

	var engine TransferEngine
	nodes := []searchNode{{bottles: start, parent: -1}}
	seen := map[string]struct{}{positionKey(start): {}}

	for head := 0; head < len(nodes); head++ {
		if head >= limit {
			return Solution{Explored: head}, fmt.Errorf("%w after %d positions", ErrSearchLimit, head)
		}
		cur := nodes[head].bottles

		for _, req := range candidateMoves(engine, cur) {
			next := make([]BottleStack, len(cur))
			copy(next, cur)
			engine.AttemptTransfer(&next[req.Source], &next[req.Destination])

			key := positionKey(next)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			nodes = append(nodes, searchNode{bottles: next, parent: head, move: req})

			if IsComplete(next) {
				return Solution{Moves: unwind(nodes, len(nodes)-1), Explored: head + 1}, nil
			}
		}
	}

	return Solution{Explored: len(nodes)}, ErrUnsolvable
}

// candidateMoves lists the legal pours worth trying from a position.
// Pours out of settled bottles and pours of a uniform bottle into an empty
// one are skipped, and only the first empty bottle is tried as a destination
// since all empty bottles are interchangeable.
func candidateMoves(engine TransferEngine, bottles []BottleStack) []TransferRequest {
	var moves []TransferRequest
	for src, from := range bottles {
		if from.IsEmpty() || from.IsSettled() {
			continue
		}
		triedEmpty := false
		for dst, to := range bottles {
			if src == dst {
				continue
			}
			if to.IsEmpty() {
				if triedEmpty || from.IsUniform() {
					continue
				}
				triedEmpty = true
			}
			if engine.Preview(from, to).Accepted {
				moves = append(moves, TransferRequest{Source: src, Destination: dst})
			}
		}
	}
	return moves
}

func unwind(nodes []searchNode, idx int) []TransferRequest {
	var moves []TransferRequest
	for ; nodes[idx].parent >= 0; idx = nodes[idx].parent {
		moves = append(moves, nodes[idx].move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// Hint returns the first move of a shortest solution.
func Hint(b *Board, limit int) (TransferRequest, error) {
	sol, err := Solve(b, limit)
	if err != nil {
		return TransferRequest{}, err
	}
	if len(sol.Moves) == 0 {
		return TransferRequest{}, fmt.Errorf("%w: board is already complete", ErrInvalidTransfer)
	}
	return sol.Moves[0], nil
}
