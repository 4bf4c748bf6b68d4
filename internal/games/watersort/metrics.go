package watersort

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// poursTotal counts pour attempts by result ("accepted" or a reject reason)
	poursTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "watersort_pours_total",
		Help: "Pour attempts by result",
	}, []string{"result"})

	// levelsSolvedTotal counts solved levels by level ID
	levelsSolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "watersort_levels_solved_total",
		Help: "Solved levels by level ID",
	}, []string{"level"})

	// solveMoves tracks the number of moves per solved level
	solveMoves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "watersort_solve_moves",
		Help:    "Moves used to solve a level",
		Buckets: []float64{2, 4, 8, 12, 16, 24, 32, 48, 64},
	})

	// assistsTotal counts undo and hint use
	assistsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "watersort_assists_total",
		Help: "Undo and hint requests",
	}, []string{"kind"})
)
