package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// 画像の保存先（ローカルディスク/オブジェクトストレージ）
type ImageStorage interface {
	//保存してクライアントが取得できるURLを返す
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 受け付ける画像と拡張子
var allowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

type UploadInput struct {
	Filename string
	Body     io.Reader
}

type UploadOutput struct {
	URL string `json:"url"`
}

type UploadUsecase struct {
	storage  ImageStorage
	idGen    IDGenerator
	clock    Clock
	maxBytes int64
	maxWidth int
	log      *zap.Logger
}

// DI
func NewUploadUsecase(
	storage ImageStorage,
	idGen IDGenerator,
	clock Clock,
	maxBytes int64,
	maxWidth int,
	log *zap.Logger,
) *UploadUsecase {
	return &UploadUsecase{
		storage:  storage,
		idGen:    idGen,
		clock:    clock,
		maxBytes: maxBytes,
		maxWidth: maxWidth,
		log:      log,
	}
}

func (u *UploadUsecase) Upload(ctx context.Context, in UploadInput) (UploadOutput, error) {
	if in.Body == nil {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "file is required")
	}

	//上限+1バイトまで読んで超過を判定する
	data, err := io.ReadAll(io.LimitReader(in.Body, u.maxBytes+1))
	if err != nil {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "failed to read file")
	}
	if int64(len(data)) > u.maxBytes {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("file too large (max %d bytes)", u.maxBytes))
	}
	if len(data) == 0 {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "file is empty")
	}

	//Content-Typeヘッダは信用せず中身で判定
	mtype := mimetype.Detect(data)
	mime := mtype.String()
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	exts, ok := allowedImageTypes[mime]
	if !ok {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "unsupported file type: only jpeg, png, webp are allowed")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !contains(exts, ext) {
		ext = mtype.Extension()
	}

	if u.maxWidth > 0 {
		resized, err := downscale(data, mime, u.maxWidth)
		if err != nil {
			return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "invalid image")
		}
		data = resized
	}

	name := u.fileName(ext)
	url, err := u.storage.Save(ctx, name, data)
	if err != nil {
		u.log.Error("save upload", zap.String("name", name), zap.Error(err))
		return UploadOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.log.Info("file uploaded", zap.String("url", url), zap.String("mime", mime), zap.Int("bytes", len(data)))
	return UploadOutput{URL: url}, nil
}

// <unix millis>-<random><ext>
func (u *UploadUsecase) fileName(ext string) string {
	random := strings.ReplaceAll(u.idGen.NewID(), "-", "")
	if len(random) > 12 {
		random = random[:12]
	}
	return fmt.Sprintf("%d-%s%s", u.clock.Now().UnixMilli(), random, ext)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

