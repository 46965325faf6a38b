package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus 联系表单提交的处理状态。
type SubmissionStatus string

const (
	StatusNew       SubmissionStatus = "new"
	StatusRead      SubmissionStatus = "read"
	StatusResponded SubmissionStatus = "responded"
)

var (
	// ErrInvalidStatus 状态不属于 new/read/responded
	ErrInvalidStatus = errors.New("invalid submission status")
	// ErrSubmissionInvalid 联系表单缺少必填项
	ErrSubmissionInvalid = errors.New("invalid contact submission")
)

// ContactFormSubmission 公开联系表单的一次提交。创建后只有 Status 可以修改。
type ContactFormSubmission struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"`
	Status    SubmissionStatus `json:"status"`
}

// SubmissionInput 是访客可以填写的字段。
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ParseStatus 校验并规范化状态字符串。
func ParseStatus(raw string) (SubmissionStatus, error) {
	switch status := SubmissionStatus(strings.ToLower(strings.TrimSpace(raw))); status {
	case StatusNew, StatusRead, StatusResponded:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// NewSubmission 生成一条状态为 new 的提交记录。
// ID 由毫秒时间戳与随机 UUID 组成，同一毫秒内生成的两条记录也不会冲突。
func NewSubmission(input SubmissionInput, now time.Time) (ContactFormSubmission, error) {
	submission := ContactFormSubmission{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if submission.Name == "" {
		return ContactFormSubmission{}, fmt.Errorf("%w: name is required", ErrSubmissionInvalid)
	}
	if submission.Email == "" {
		return ContactFormSubmission{}, fmt.Errorf("%w: email is required", ErrSubmissionInvalid)
	}
	if submission.Message == "" {
		return ContactFormSubmission{}, fmt.Errorf("%w: message is required", ErrSubmissionInvalid)
	}

	submission.ID = fmt.Sprintf("submission_%d_%s", now.UnixMilli(), uuid.NewString())
	submission.Timestamp = now.UTC().Format(time.RFC3339Nano)
	submission.Status = StatusNew
	return submission, nil
}
