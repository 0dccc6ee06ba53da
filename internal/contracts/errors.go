package contracts

import "errors"

// ErrEmptyDataset signals that no rows survived normalization. Without
// rows there is no snapshot date and nothing to score, so the whole
// run aborts rather than producing a partial profile table.
var ErrEmptyDataset = errors.New("empty dataset after cleaning")
