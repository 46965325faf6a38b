package service

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage 上传的文件不是可识别的图片
var ErrUnsupportedImage = errors.New("unsupported image format")

// MaxUploadBytes 单个图片的大小上限
const MaxUploadBytes = 10 << 20

var formatExtensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"webp": ".webp",
}

// StoredImage 描述一个已保存的上传文件
type StoredImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
}

// UploadService 保存后台上传的图片
type UploadService struct {
	dir     string
	urlPath string
	now     func() time.Time
}

// NewUploadService 创建上传服务，dir 为磁盘目录，urlPath 为对外访问前缀。
func NewUploadService(dir, urlPath string) *UploadService {
	return &UploadService{dir: dir, urlPath: strings.TrimRight(urlPath, "/"), now: time.Now}
}

// InspectImage 读取图片头部，返回格式与尺寸
func InspectImage(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if _, ok := formatExtensions[format]; !ok {
		return image.Config{}, "", fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	return cfg, format, nil
}

// Save 校验并保存上传的图片。文件名由日期与 UUID 组成，扩展名取自实际格式。
func (s *UploadService) Save(file *multipart.FileHeader) (*StoredImage, error) {
	if file.Size > MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrUnsupportedImage, MaxUploadBytes)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	cfg, format, err := InspectImage(src)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.New().String(), formatExtensions[format])
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, err
	}
	size, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(filepath.Join(s.dir, filename))
		return nil, errors.Join(copyErr, closeErr)
	}

	return &StoredImage{
		Filename: filename,
		URL:      path.Join(s.urlPath, filename),
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     size,
	}, nil
}
