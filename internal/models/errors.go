package models

import "errors"

// Warp registry errors, shared by the repository and everything that maps
// registry failures to user-facing responses.
var (
	ErrWarpNotFound = errors.New("warp point not found")
	ErrWarpExists   = errors.New("warp point already exists")
)
