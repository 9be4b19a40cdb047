package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/tsawler/reflow/model"
)

func TestMemory(t *testing.T) {
	src := NewMemory(
		MemoryPage{
			Fragments: []model.Fragment{model.NewFragment("Section 1", 0, 0, 50, 12)},
			Images:    []model.ImagePrimitive{{Data: []byte{1}, Ext: "png", Index: 0}},
		},
		MemoryPage{},
		MemoryPage{Err: errors.New("corrupt content stream")},
	)
	ctx := context.Background()

	if src.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", src.PageCount())
	}

	fragments, err := src.Fragments(ctx, 0)
	if err != nil || len(fragments) != 1 || fragments[0].Text != "Section 1" {
		t.Errorf("Fragments(0) = %v, %v", fragments, err)
	}
	images, err := src.Images(ctx, 0)
	if err != nil || len(images) != 1 {
		t.Errorf("Images(0) = %v, %v", images, err)
	}

	// Returned slices are copies
	fragments[0].Text = "changed"
	again, _ := src.Fragments(ctx, 0)
	if again[0].Text != "Section 1" {
		t.Error("Fragments returned shared storage")
	}

	empty, err := src.Fragments(ctx, 1)
	if err != nil || len(empty) != 0 {
		t.Errorf("Fragments(1) = %v, %v", empty, err)
	}

	_, err = src.Images(ctx, 2)
	var ee *model.ExtractionError
	if !errors.As(err, &ee) || ee.Page != 2 {
		t.Errorf("expected ExtractionError for page 2, got %v", err)
	}

	if _, err := src.Fragments(ctx, 3); !errors.Is(err, model.ErrExtraction) {
		t.Errorf("expected out of range extraction error, got %v", err)
	}
}

func TestMemoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemory(MemoryPage{}).Fragments(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
