package query

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page 页码参数，均从 1 开始
type Page struct {
	Page  int
	Limit int
}

// Offset 当前页偏移
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// NewPage 夹紧到合法范围
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// 保证 (page-1)*limit 不溢出
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Page{Page: page, Limit: limit}
}

// ParsePage 解析 query string；缺失或非数字时使用 1 与 defaultLimit
func ParsePage(pageStr, limitStr string, defaultLimit int) Page {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	page, err := strconv.Atoi(strings.TrimSpace(pageStr))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
	if err != nil {
		limit = defaultLimit
	}
	return NewPage(page, limit)
}

// Result 分页结果
type Result[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Map 转换元素类型，保留分页元数据
func Map[S, T any](r *Result[S], fn func(S) T) *Result[T] {
	out := &Result[T]{
		Items:      make([]T, len(r.Items)),
		Page:       r.Page,
		Limit:      r.Limit,
		TotalItems: r.TotalItems,
		TotalPages: r.TotalPages,
		HasNext:    r.HasNext,
		HasPrev:    r.HasPrev,
	}
	for i, it := range r.Items {
		out.Items[i] = fn(it)
	}
	return out
}

func newResult[T any](items []T, p Page, total int64) *Result[T] {
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return &Result[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}

// Paginate 在完整组合（连接、过滤、个性化、排序）之后切片。
// 总数与当前页是两次读取，翻页之间的并发写入可能导致页间漂移。
func Paginate[T any](ctx context.Context, q *Query, p Page) (*Result[T], error) {
	p = NewPage(p.Page, p.Limit)

	var total int64
	if err := q.db.WithContext(ctx).Table("(?) AS page_src", q.Build(ctx)).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count page source")
	}

	var items []T
	if p.Offset() >= 0 && int64(p.Offset()) < total {
		if err := q.Build(ctx).Offset(p.Offset()).Limit(p.Limit).Scan(&items).Error; err != nil {
			return nil, errors.Wrap(err, "scan page")
		}
	}
	return newResult(items, p, total), nil
}
