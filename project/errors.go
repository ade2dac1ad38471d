package project

import "errors"

var (
	ErrBlockIndex    = errors.New("block index out of range")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownKind   = errors.New("unknown block type")
	ErrInvalidSource = errors.New("source not valid for block type")
	ErrNotUploadMode = errors.New("block is not in upload mode")
	ErrNotMedia      = errors.New("block does not hold media")
	ErrDirection     = errors.New("direction must be up or down")
	ErrInterchange   = errors.New("invalid project data")
)
