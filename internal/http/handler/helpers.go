package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sandeepkv93/product-catalog-service/internal/repository"
)

func parsePathID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func parsePageRequest(r *http.Request) (repository.PageRequest, error) {
	req := repository.PageRequest{Page: repository.DefaultPage, PageSize: repository.DefaultPageSize}
	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return repository.PageRequest{}, fmt.Errorf("invalid page %q", raw)
		}
		req.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > repository.MaxPageSize {
			return repository.PageRequest{}, fmt.Errorf("invalid page_size %q", raw)
		}
		req.PageSize = size
	}
	return req, nil
}

func paginatedData[T any](items []T, page, pageSize int, total int64, totalPages int) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{
		"items": items,
		"pagination": map[string]any{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	}
}
