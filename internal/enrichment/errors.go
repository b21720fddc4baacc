package enrichment

import "errors"

// ErrInvalidInput indicates a missing or malformed content identifier.
var ErrInvalidInput = errors.New("missing content id")

// ErrNotFound indicates the referenced content row does not exist.
var ErrNotFound = errors.New("content not found")

// ErrStore indicates the enrichment result could not be persisted. Reported
// distinctly from classification failures: the classification succeeded but
// its output was lost.
var ErrStore = errors.New("failed to store enrichment result")
