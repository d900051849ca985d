package service

import (
	"math/rand/v2"
	"strconv"
)

// SeatMap is the cabin layout seats are drawn from: rows 1..Rows, one letter per seat column.
type SeatMap struct {
	Rows    int
	Letters string
}

var DefaultSeatMap = SeatMap{Rows: 30, Letters: "ABCDEF"}

const maxRandomSeatDraws = 16

func (m SeatMap) Capacity() int {
	return m.Rows * len(m.Letters)
}

func (m SeatMap) seat(row int, col int) string {
	return strconv.Itoa(row) + string(m.Letters[col])
}

// seatAllocator hands out free seats for one booking. Random draws first; after
// maxRandomSeatDraws collisions it walks the map row-major and takes the first
// free seat, so it never spins on a nearly full cabin.
type seatAllocator struct {
	m     SeatMap
	taken map[string]bool
	free  int
	intN  func(n int) int
}

func newSeatAllocator(m SeatMap, taken []string, intN func(n int) int) *seatAllocator {
	if intN == nil {
		intN = rand.IntN
	}
	a := &seatAllocator{m: m, taken: make(map[string]bool, len(taken)), free: m.Capacity(), intN: intN}
	for row := 1; row <= m.Rows; row++ {
		for col := range len(m.Letters) {
			a.taken[m.seat(row, col)] = false
		}
	}
	for _, s := range taken {
		if isTaken, inMap := a.taken[s]; inMap && !isTaken {
			a.taken[s] = true
			a.free--
		}
	}
	return a
}

func (a *seatAllocator) Free() int { return a.free }

// Next returns a free seat and marks it taken. fallback reports whether the
// seat came from enumeration. ok is false when the cabin is full.
func (a *seatAllocator) Next() (seat string, fallback bool, ok bool) {
	if a.free == 0 {
		return "", false, false
	}

	for range maxRandomSeatDraws {
		s := a.m.seat(a.intN(a.m.Rows)+1, a.intN(len(a.m.Letters)))
		if !a.taken[s] {
			a.take(s)
			return s, false, true
		}
	}

	for row := 1; row <= a.m.Rows; row++ {
		for col := range len(a.m.Letters) {
			s := a.m.seat(row, col)
			if !a.taken[s] {
				a.take(s)
				return s, true, true
			}
		}
	}
	return "", false, false
}

func (a *seatAllocator) take(s string) {
	a.taken[s] = true
	a.free--
}
