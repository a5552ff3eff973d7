package model

// Package model defines domain data structures used across the app: tasks,
// task state enums, video metadata, and normalized progress records. Tasks are
// owned by the coordinator and published to observers as value snapshots.
