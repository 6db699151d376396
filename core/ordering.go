package core

import "fmt"

// Direction is the way an item moves among its siblings.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(CleanString(s, true /* lower */)); d {
	case Up, Down:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q", s)
	}
}

// Reorder returns a copy of list where the item at index is swapped with its neighbour in dir.
// Moving the first item up, the last item down or an out of range index is a no-op: the copy is
// returned unchanged along with false.
func Reorder[T any](list []T, index int, dir Direction) ([]T, bool) {
	res := make([]T, len(list))
	copy(res, list)

	var target int
	switch dir {
	case Up:
		target = index - 1
	case Down:
		target = index + 1
	default:
		return res, false
	}
	if index < 0 || index >= len(res) || target < 0 || target >= len(res) {
		return res, false
	}
	res[index], res[target] = res[target], res[index]
	return res, true
}

// Group holds the records sharing the same Key.
type Group[T any] struct {
	Key     string
	Records []T
}

// GroupBy groups records by key. Groups are ordered by the first occurrence of their key.
func GroupBy[T any](records []T, key func(T) string) []Group[T] {
	groups := make([]Group[T], 0)
	index := make(map[string]int)
	for _, rec := range records {
		k := key(rec)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}

// GroupKeys returns the keys of groups, in order.
func GroupKeys[T any](groups []Group[T]) []string {
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}
