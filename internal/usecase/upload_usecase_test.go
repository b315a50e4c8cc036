package usecase

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type StorageMock struct{ mock.Mock }

func (m *StorageMock) Save(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

type fixedID string

func (f fixedID) NewID() string { return string(f) }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newUploadUC(st ImageStorage, maxBytes int64, maxWidth int) *UploadUsecase {
	return NewUploadUsecase(st, fixedID("0b5e1c2d-aaaa-bbbb-cccc-ddddeeeeffff"), clock.NewFakeClock(t0), maxBytes, maxWidth, zap.NewNop())
}

func TestUploadUsecase_AcceptsPNG(t *testing.T) {
	st := new(StorageMock)
	wantName := "1709283600000-0b5e1c2daaaa.png"
	st.On("Save", mock.Anything, wantName, mock.Anything).Return("/uploads/"+wantName, nil).Once()

	out, err := newUploadUC(st, 8<<20, 0).Upload(context.Background(), UploadInput{
		Filename: "Photo.PNG",
		Body:     bytes.NewReader(pngBytes(t, 4, 4)),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+wantName, out.URL)
	assert.True(t, strings.HasSuffix(out.URL, ".png"))
	st.AssertExpectations(t)
}

func TestUploadUsecase_ExtensionFromContent(t *testing.T) {
	st := new(StorageMock)
	st.On("Save", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, ".png")
	}), mock.Anything).Return("/uploads/x.png", nil).Once()

	//拡張子なし・不一致は中身から決める
	_, err := newUploadUC(st, 8<<20, 0).Upload(context.Background(), UploadInput{
		Filename: "image.html",
		Body:     bytes.NewReader(pngBytes(t, 2, 2)),
	})
	require.NoError(t, err)
	st.AssertExpectations(t)
}

func TestUploadUsecase_RejectsDisguisedText(t *testing.T) {
	st := new(StorageMock)

	_, err := newUploadUC(st, 8<<20, 0).Upload(context.Background(), UploadInput{
		Filename: "evil.png",
		Body:     strings.NewReader("just some text, not an image"),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	st.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadUsecase_RejectsTooLarge(t *testing.T) {
	st := new(StorageMock)
	data := pngBytes(t, 4, 4)

	_, err := newUploadUC(st, int64(len(data)-1), 0).Upload(context.Background(), UploadInput{
		Filename: "big.png",
		Body:     bytes.NewReader(data),
	})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Message, "too large")
	st.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadUsecase_ExactlyMaxIsAccepted(t *testing.T) {
	st := new(StorageMock)
	st.On("Save", mock.Anything, mock.Anything, mock.Anything).Return("/uploads/a.png", nil).Once()
	data := pngBytes(t, 4, 4)

	_, err := newUploadUC(st, int64(len(data)), 0).Upload(context.Background(), UploadInput{
		Filename: "a.png",
		Body:     bytes.NewReader(data),
	})
	assert.NoError(t, err)
}

func TestUploadUsecase_RejectsEmpty(t *testing.T) {
	_, err := newUploadUC(new(StorageMock), 8<<20, 0).Upload(context.Background(), UploadInput{
		Filename: "a.png",
		Body:     bytes.NewReader(nil),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUploadUsecase_Downscale(t *testing.T) {
	st := new(StorageMock)
	var saved []byte
	st.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]byte) }).
		Return("/uploads/a.png", nil).Once()

	_, err := newUploadUC(st, 8<<20, 50).Upload(context.Background(), UploadInput{
		Filename: "wide.png",
		Body:     bytes.NewReader(pngBytes(t, 200, 100)),
	})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(saved))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}
