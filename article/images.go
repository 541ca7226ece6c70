package article

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
)

// ImagesDir is the subdirectory of the output folder holding images.
const ImagesDir = "images"

// DefaultImageExt is used when an image URL has no extension.
const DefaultImageExt = ".jpg"

// Downloader streams a URL to a local file.
type Downloader interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

// ImageExt returns the extension of the URL path, or DefaultImageExt.
func ImageExt(imgURL string) string {
	u, err := url.Parse(imgURL)
	if err != nil {
		return DefaultImageExt
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return DefaultImageExt
}

// ImageFilename names the n-th saved image of an article.
func ImageFilename(imgURL, title string, n int) string {
	return fmt.Sprintf("%s_img%d%s", SanitizeFilename(title), n, ImageExt(imgURL))
}

// DownloadImage saves imgURL under outDir/images and returns the path to
// embed in Markdown, relative to outDir. Existing files are overwritten.
func DownloadImage(ctx context.Context, dl Downloader, imgURL, title string, n int, outDir string) (string, error) {
	if imgURL == "" {
		return "", fmt.Errorf("empty image URL")
	}

	name := ImageFilename(imgURL, title, n)
	dest := filepath.Join(outDir, ImagesDir, name)

	if _, err := dl.Download(ctx, imgURL, dest); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", imgURL, err)
	}

	return path.Join(ImagesDir, name), nil
}
