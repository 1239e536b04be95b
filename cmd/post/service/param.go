package service

import (
	"strconv"
	"strings"

	"blog.com/cmd/post/dal/db"
	"blog.com/pkg/errno"
)

const (
	categorySuffix = " CID"
	authorSuffix   = " UID"
	tagSuffix      = " TID"
)

// Param GET /posts/:param 的三种形式：<id> CID、<id> UID、<tag> TID
type Param struct {
	Kind  string
	Id    int64
	Tag   string
	Scope db.Scope
}

func ParseParam(raw string) (Param, error) {
	switch {
	case strings.HasSuffix(raw, categorySuffix):
		id, err := strconv.ParseInt(strings.TrimSpace(strings.TrimSuffix(raw, categorySuffix)), 10, 64)
		if err != nil {
			return Param{}, errno.ParamErr.WithMessage("Invalid category id")
		}
		return Param{Kind: "category", Id: id, Scope: db.ByCategory(id)}, nil
	case strings.HasSuffix(raw, authorSuffix):
		id, err := strconv.ParseInt(strings.TrimSpace(strings.TrimSuffix(raw, authorSuffix)), 10, 64)
		if err != nil {
			return Param{}, errno.ParamErr.WithMessage("Invalid user id")
		}
		return Param{Kind: "user", Id: id, Scope: db.ByAuthor(id)}, nil
	case strings.HasSuffix(raw, tagSuffix):
		tag := strings.TrimSuffix(raw, tagSuffix)
		if strings.TrimSpace(tag) == "" {
			return Param{}, errno.ParamErr.WithMessage("Empty tag")
		}
		return Param{Kind: "tag", Tag: tag, Scope: db.ByTag(tag)}, nil
	}
	return Param{}, errno.ParamErr.WithMessage("All fields are required")
}

// ParseIds 逗号分隔的 id 列表
func ParseIds(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, errno.ParamErr.WithMessage("Invalid id: " + p)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errno.ParamErr.WithMessage("All fields are required")
	}
	return ids, nil
}
