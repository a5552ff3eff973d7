package progress

// Package progress converts raw resolver progress events into canonical
// model.Progress records and provides the display formatting used by both
// front-ends. Normalize is pure and synchronous so it can run on whichever
// thread receives the raw callback.
