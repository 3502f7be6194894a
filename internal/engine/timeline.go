package engine

import "github.com/claude/pacer/internal/models"

// Timeline is a non-empty ordered sequence of blocks: the current block plus
// everything after it. The head/tail split makes "never empty while active"
// structural rather than a runtime check.
type Timeline struct {
	Head Block
	Tail []Block
}

// Len reports the number of blocks left in the timeline, head included.
func (t Timeline) Len() int {
	return 1 + len(t.Tail)
}

// Blocks returns the remaining blocks in order.
func (t Timeline) Blocks() []Block {
	out := make([]Block, 0, t.Len())
	out = append(out, t.Head)
	return append(out, t.Tail...)
}

// TotalRemaining sums the remaining seconds across all blocks.
func (t Timeline) TotalRemaining() int {
	total := t.Head.Remaining()
	for _, b := range t.Tail {
		total += b.Remaining()
	}
	return total
}

// Build derives the initial workout state for a configuration snapshot.
// It is total: an empty workout maps to the never-started state, anything
// else to a staged timeline awaiting an explicit start.
func Build(s models.Snapshot) Data {
	var blocks []Block

	for _, set := range s.Sets.Ordered() {
		seq := setBlocks(set, s)
		if len(seq) == 0 {
			continue
		}
		// One set break between each pair of contributing sets.
		if len(blocks) > 0 {
			blocks = append(blocks, SetBreakBlock{
				Duration: s.SetBreakSecs.Seconds(),
				Left:     s.SetBreakSecs.Seconds(),
			})
		}
		blocks = append(blocks, seq...)
	}

	if len(blocks) == 0 {
		return Data{state: neverStarted{}}
	}

	if s.CountdownEnabled {
		countdown := CountdownBlock{
			Duration: s.CountdownSecs.Seconds(),
			Left:     s.CountdownSecs.Seconds(),
		}
		blocks = append([]Block{countdown}, blocks...)
	}

	return Data{state: starting{timeline: Timeline{Head: blocks[0], Tail: blocks[1:]}}}
}

// setBlocks flattens one set into its full block sequence: each repeat's
// exercises in order, with a break before every exercise except the very
// first. That places a break between repeats as well as within them, and
// none after the final exercise.
func setBlocks(set models.ExerciseSet, s models.Snapshot) []Block {
	if len(set.Exercises) == 0 {
		return nil
	}

	repeats := set.Repeats
	if repeats < 1 {
		repeats = 1
	}

	exSecs := s.ExerciseSecs.Seconds()
	brSecs := s.BreakSecs.Seconds()

	blocks := make([]Block, 0, repeats*len(set.Exercises)*2-1)
	for rep := 0; rep < repeats; rep++ {
		for i, ex := range set.Exercises {
			if rep > 0 || i > 0 {
				blocks = append(blocks, BreakBlock{Duration: brSecs, Left: brSecs})
			}
			blocks = append(blocks, ExerciseBlock{
				SetName:  set.Name,
				Name:     ex.Name,
				Duration: exSecs,
				Left:     exSecs,
			})
		}
	}
	return blocks
}
