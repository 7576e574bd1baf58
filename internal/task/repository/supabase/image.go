package supabase

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"realtime-task-manager/internal/task/repository"
)

func (r *imageRepository) UploadImage(ctx context.Context, opt repository.UploadImageOptions) (string, error) {
	if strings.TrimSpace(opt.FileName) == "" {
		return "", repository.ErrEmptyFileName
	}

	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}
	key := objectKey(opt.FileName, now)

	if _, err := r.client.Upload(ctx, r.cfg.Bucket, key, opt.ContentType, opt.Body); err != nil {
		r.l.Errorf(ctx, "supabase.imageRepository.UploadImage: key=%s: %v", key, err)
		return "", fmt.Errorf("%w: %w", repository.ErrFailedToUpload, err)
	}

	return r.client.PublicURL(r.cfg.Bucket, key), nil
}

// objectKey is "<file name>-<unix millis>". Two uploads of one name within the
// same millisecond collide and the second fails.
func objectKey(fileName string, now time.Time) string {
	return path.Base(strings.ReplaceAll(fileName, "\\", "/")) + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
