package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"
	"testing"
)

type fakeRenderer struct {
	name  string
	pages []image.Image
	err   error
}

func (f fakeRenderer) Name() string { return f.name }

func (f fakeRenderer) RenderPages(ctx context.Context, path string, maxPages int) ([]image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.pages) > maxPages {
		return f.pages[:maxPages], nil
	}
	return f.pages, nil
}

func testPage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestExtractImagesFallsThroughChain(t *testing.T) {
	s := &extractorService{renderers: []PageRenderer{
		fakeRenderer{name: "broken", err: errors.New("no backend")},
		fakeRenderer{name: "empty"},
		fakeRenderer{name: "working", pages: []image.Image{testPage(100, 100), testPage(100, 100)}},
	}}

	images := s.ExtractImages(context.Background(), "doc.pdf")
	if len(images) != 2 {
		t.Fatalf("expected 2 images from the working renderer, got %d", len(images))
	}
	for i, b64 := range images {
		if _, err := base64.StdEncoding.DecodeString(b64); err != nil {
			t.Errorf("image %d is not valid base64: %v", i, err)
		}
	}
}

func TestExtractImagesAllRenderersFail(t *testing.T) {
	s := &extractorService{renderers: []PageRenderer{
		fakeRenderer{name: "a", err: errors.New("boom")},
		fakeRenderer{name: "b", err: errors.New("boom")},
	}}

	if images := s.ExtractImages(context.Background(), "doc.pdf"); len(images) != 0 {
		t.Fatalf("expected no images, got %d", len(images))
	}
}

func TestExtractImagesCapsPageCount(t *testing.T) {
	pages := make([]image.Image, maxExtractPages+3)
	for i := range pages {
		pages[i] = testPage(50, 50)
	}
	s := &extractorService{renderers: []PageRenderer{fakeRenderer{name: "big", pages: pages}}}

	if images := s.ExtractImages(context.Background(), "doc.pdf"); len(images) != maxExtractPages {
		t.Fatalf("expected %d images, got %d", maxExtractPages, len(images))
	}
}

func TestEncodePageImageDownscales(t *testing.T) {
	b64, err := encodePageImage(testPage(2048, 1024))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("not valid base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("not a valid JPEG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDim || bounds.Dy() > maxImageDim {
		t.Errorf("image not bounded: %dx%d", bounds.Dx(), bounds.Dy())
	}
	// 2:1 aspect ratio must survive the downscale.
	if bounds.Dx() != 1024 || bounds.Dy() != 512 {
		t.Errorf("aspect ratio lost: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDownscaleLeavesSmallImagesAlone(t *testing.T) {
	small := testPage(640, 480)
	if got := downscale(small, maxImageDim); got != small {
		t.Error("small image should be returned unchanged")
	}
}

func TestBlankPageDimensions(t *testing.T) {
	b := blankPage().Bounds()
	if b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("unexpected placeholder size %dx%d", b.Dx(), b.Dy())
	}
}
