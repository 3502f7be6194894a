package models

import "slices"

// SetList is an ordered collection of exercise sets keyed by stable integer
// position. Entries can be inserted, removed, duplicated, and moved by
// position without disturbing the identity of unrelated entries. Iteration
// always follows ascending position order, regardless of insertion order.
type SetList struct {
	sets map[int]ExerciseSet
}

// NewSetList returns an empty set list.
func NewSetList() SetList {
	return SetList{sets: map[int]ExerciseSet{}}
}

// Len reports the number of sets.
func (l SetList) Len() int {
	return len(l.sets)
}

// Get returns the set at the given position.
func (l SetList) Get(pos int) (ExerciseSet, bool) {
	s, ok := l.sets[pos]
	return s, ok
}

// Positions returns all occupied positions in ascending order.
func (l SetList) Positions() []int {
	positions := make([]int, 0, len(l.sets))
	for pos := range l.sets {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	return positions
}

// Ordered returns the sets in ascending position order.
func (l SetList) Ordered() []ExerciseSet {
	out := make([]ExerciseSet, 0, len(l.sets))
	for _, pos := range l.Positions() {
		out = append(out, l.sets[pos])
	}
	return out
}

// Append adds a set after the current highest position.
func (l SetList) Append(set ExerciseSet) {
	next := 0
	for pos := range l.sets {
		if pos >= next {
			next = pos + 1
		}
	}
	l.sets[next] = set
}

// Put replaces the set at the given position.
func (l SetList) Put(pos int, set ExerciseSet) {
	l.sets[pos] = set
}

// Insert places a set at the given position, shifting that entry and every
// later one up by one.
func (l SetList) Insert(pos int, set ExerciseSet) {
	positions := l.Positions()
	for i := len(positions) - 1; i >= 0; i-- {
		p := positions[i]
		if p < pos {
			break
		}
		l.sets[p+1] = l.sets[p]
		delete(l.sets, p)
	}
	l.sets[pos] = set
}

// Remove deletes the set at the given position, shifting later entries down
// to keep positions contiguous.
func (l SetList) Remove(pos int) bool {
	if _, ok := l.sets[pos]; !ok {
		return false
	}
	delete(l.sets, pos)
	for _, p := range l.Positions() {
		if p > pos {
			l.sets[p-1] = l.sets[p]
			delete(l.sets, p)
		}
	}
	return true
}

// Duplicate copies the set at the given position into the next slot,
// shifting later entries up.
func (l SetList) Duplicate(pos int) bool {
	set, ok := l.sets[pos]
	if !ok {
		return false
	}
	copied := set
	copied.Exercises = slices.Clone(set.Exercises)
	l.Insert(pos+1, copied)
	return true
}

// Move relocates the set at from to position to, shifting entries between
// the two positions.
func (l SetList) Move(from, to int) bool {
	set, ok := l.sets[from]
	if !ok || from == to {
		return ok
	}
	// Remove compacts the higher positions, so inserting at the requested
	// slot needs no adjustment in either direction.
	l.Remove(from)
	l.Insert(to, set)
	return true
}
