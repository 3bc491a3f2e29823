package game

import "math/rand"

// maxSpawnAttempts bounds rejection sampling before falling back to
// enumerating free cells.
const maxSpawnAttempts = 64

// spawnFood picks a cell uniformly at random among those not in occupied.
// Returns false when the board has no free cell.
//
// Rejection sampling is uniform over free cells and cheap while the snake
// is short. After maxSpawnAttempts misses it switches to picking directly
// from the list of free cells, which is also uniform and always terminates.
func spawnFood(rng *rand.Rand, board Board, occupied []Position) (Position, bool) {
	if len(occupied) >= board.Cells() {
		return Position{}, false
	}

	taken := make(map[Position]struct{}, len(occupied))
	for _, p := range occupied {
		taken[p] = struct{}{}
	}

	for i := 0; i < maxSpawnAttempts; i++ {
		p := Position{Col: rng.Intn(board.Cols), Row: rng.Intn(board.Rows)}
		if _, ok := taken[p]; !ok {
			return p, true
		}
	}

	free := make([]Position, 0, board.Cells()-len(taken))
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			p := Position{Col: col, Row: row}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return free[rng.Intn(len(free))], true
}
