package database

import "github.com/google/uuid"

const maxIDAttempts = 10

type idGenerator struct {
	next func() string
}

func newIDGenerator() *idGenerator {
	return &idGenerator{next: uuid.NewString}
}

// unique returns a generated id absent from taken, retrying on collision.
func (g *idGenerator) unique(taken map[string]struct{}) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := g.next()
		if id == "" {
			continue
		}
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
