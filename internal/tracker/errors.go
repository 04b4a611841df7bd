package tracker

import "errors"

var (
	ErrEmptyDescription = errors.New("task description is empty")
	ErrEmptyFolderName  = errors.New("folder name is empty")
	ErrDuplicateFolder  = errors.New("folder already exists")
	ErrTaskNotFound     = errors.New("task not found")
	ErrFolderNotFound   = errors.New("folder not found")
)
