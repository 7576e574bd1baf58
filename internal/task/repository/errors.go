package repository

import "errors"

var (
	ErrFailedToInsert    = errors.New("failed to insert task")
	ErrFailedToList      = errors.New("failed to list tasks")
	ErrFailedToUpdate    = errors.New("failed to update task")
	ErrFailedToDelete    = errors.New("failed to delete task")
	ErrFailedToUpload    = errors.New("failed to upload image")
	ErrFailedToSubscribe = errors.New("failed to subscribe")
	ErrEmptyFileName     = errors.New("file name is empty")
)
