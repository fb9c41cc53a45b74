package domain

// PageRequest 分页参数，对核心透明，透传给存储层
type PageRequest struct {
	Page int    // 从 1 开始
	Size int    // 单页条数
	Sort string // 可选排序键，空则用存储默认序
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 || p.Size > 100 {
		p.Size = 20
	}
	return p
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Size }

type Page[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"totalPages"`
}

func NewPage[T any](list []T, total int64, req PageRequest) Page[T] {
	if list == nil {
		list = []T{}
	}
	var pages int64
	if req.Size > 0 {
		pages = (total + int64(req.Size) - 1) / int64(req.Size)
	}
	return Page[T]{List: list, Total: total, Page: req.Page, Size: req.Size, TotalPages: pages}
}
