package util

import (
	"Newsroom/internal/pkg/consts"
	"errors"
	"math"
	"strconv"
	"strings"
)

// MaxPage 保证 (page-1)*size 不溢出
const MaxPage = math.MaxInt / consts.MaxPageSize

// Page 归一化后的分页参数
type Page struct {
	Page int
	Size int
}

// NormalizePage page 从 1 开始，size 为 0 时取默认值，其余夹到 [1, MaxPageSize]
func NormalizePage(page, size int) Page {
	if page < 1 {
		page = consts.DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	switch {
	case size == 0:
		size = consts.DefaultPageSize
	case size < 1:
		size = 1
	case size > consts.MaxPageSize:
		size = consts.MaxPageSize
	}
	return Page{Page: page, Size: size}
}

// ParsePage 解析查询参数，无法解析的值按缺省处理
func ParsePage(pageStr, sizeStr string) Page {
	page, err := strconv.Atoi(strings.TrimSpace(pageStr))
	switch {
	case errors.Is(err, strconv.ErrRange) && page > 0:
		page = MaxPage
	case err != nil:
		page = consts.DefaultPage
	}
	size, err := strconv.Atoi(strings.TrimSpace(sizeStr))
	if err != nil {
		size = 0
	}
	return NormalizePage(page, size)
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages 向上取整
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
