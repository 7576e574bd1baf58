package usecase

import (
	"context"

	"realtime-task-manager/internal/task"
	"realtime-task-manager/internal/task/repository"
)

// UploadImage returns the public URL of the stored image, or "" on any failure.
func (uc *implUseCase) UploadImage(ctx context.Context, input task.UploadImageInput) string {
	url, err := uc.images.UploadImage(ctx, repository.UploadImageOptions{
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Body:        input.Body,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.UploadImage: file=%s: %v", input.FileName, err)
		return ""
	}
	return url
}
