package service

import (
	"bytes"
	htmlstd "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/wems/internal/content"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer     = bluemonday.UGCPolicy()
	plainSanitize = bluemonday.StrictPolicy()
)

// RenderMarkdown 把后台编辑的 Markdown 渲染为安全的 HTML
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// SanitizeText 去掉所有标签，只保留纯文本。实体会被还原，输出不是 HTML。
func SanitizeText(input string) string {
	return strings.TrimSpace(htmlstd.UnescapeString(plainSanitize.Sanitize(input)))
}

// SanitizeSubmission 清理公开联系表单的输入
func SanitizeSubmission(input content.SubmissionInput) content.SubmissionInput {
	return content.SubmissionInput{
		Name:    SanitizeText(input.Name),
		Email:   SanitizeText(input.Email),
		Subject: SanitizeText(input.Subject),
		Message: SanitizeText(input.Message),
	}
}
