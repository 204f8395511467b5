package search

import "errors"

var ErrPredicatePanic = errors.New("predicate panicked")
