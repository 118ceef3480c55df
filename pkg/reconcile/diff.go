package reconcile

// Partition is the keyed diff between two renders.
type Partition struct {
	Enter  []string `json:"enter"`
	Update []string `json:"update"`
	Exit   []string `json:"exit"`
}

// Diff partitions keys. Enter and Update follow the order of next; Exit
// follows the order of old.
func Diff(old, next []string) Partition {
	inOld := make(map[string]bool, len(old))
	for _, k := range old {
		inOld[k] = true
	}
	inNext := make(map[string]bool, len(next))

	p := Partition{Enter: []string{}, Update: []string{}, Exit: []string{}}
	for _, k := range next {
		if inNext[k] {
			continue
		}
		inNext[k] = true
		if inOld[k] {
			p.Update = append(p.Update, k)
		} else {
			p.Enter = append(p.Enter, k)
		}
	}
	for _, k := range old {
		if !inNext[k] {
			p.Exit = append(p.Exit, k)
		}
	}
	return p
}

// Stats summarizes a partition.
type Stats struct {
	Enter, Update, Exit int
}

// Stats returns the size of each set.
func (p Partition) Stats() Stats {
	return Stats{Enter: len(p.Enter), Update: len(p.Update), Exit: len(p.Exit)}
}
