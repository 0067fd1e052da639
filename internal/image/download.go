package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/binderbase/internal/util"
)

// maxParallelDownloads bounds the art fan-out for one deck image.
const maxParallelDownloads = 8

// DownloadImage fetches url and decodes it, honoring EXIF orientation.
func DownloadImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
}

// DownloadAll fetches urls concurrently and returns the decoded images in
// input order. Empty urls and failed downloads are skipped.
func DownloadAll(ctx context.Context, client *http.Client, urls []string) []image.Image {
	slots := make([]image.Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDownloads)
	for i, u := range urls {
		if u == "" {
			continue
		}
		g.Go(func() error {
			img, err := DownloadImage(gctx, client, u)
			if err == nil {
				slots[i] = img
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]image.Image, 0, len(slots))
	for _, img := range slots {
		if img != nil {
			out = append(out, img)
		}
	}
	return out
}
