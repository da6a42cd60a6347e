package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zenmarket/internal/models"
	"zenmarket/internal/repositories"
	"zenmarket/internal/storage"
)

// MockAIClient is a mock implementation of AIClient
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) CompleteText(ctx context.Context, req TextRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	args := m.Called(ctx, req)
	img, _ := args.Get(0).(*GeneratedImage)
	return img, args.Error(1)
}

func testRetreat(id string, price int) *models.Retreat {
	return &models.Retreat{
		ID:          id,
		Title:       "Serene Yoga Retreat " + id,
		Slug:        "serene-yoga-retreat-" + id,
		Description: "A week of breath and movement.",
		Category:    "Yoga",
		Price:       price,
		Location:    models.Location{City: "Ubud", Country: "Indonesia"},
		Dates:       []string{"2026-10-15", "2026-11-01"},
	}
}

func testRepo() *repositories.StateRepository {
	return repositories.NewStateRepository(storage.NewMemoryStore(), nil)
}

func newCart(t *testing.T, repo CartPersister) *CartStore {
	t.Helper()
	cart, err := NewCartStore(context.Background(), repo)
	require.NoError(t, err)
	return cart
}

func newWishlist(t *testing.T, repo WishlistPersister) *WishlistStore {
	t.Helper()
	wishlist, err := NewWishlistStore(context.Background(), repo)
	require.NoError(t, err)
	return wishlist
}

func encodeTestImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 140, B: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	default:
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	}
	return buf.Bytes()
}
