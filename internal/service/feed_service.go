package service

import (
	"sort"
	"strings"
	"time"

	"Connect_Hub/internal/model"
)

type SortMode string

const (
	SortUpvotes  SortMode = "upvotes"
	SortRecent   SortMode = "recent"
	SortTrending SortMode = "trending"
)

// FeedOptions 每次请求的临时过滤/排序状态
type FeedOptions struct {
	Search    string
	Tags      []string
	Sort      SortMode
	Ascending bool
	Now       time.Time // 零值取当前时间，trending 用
}

// BuildFeed 由帖子快照计算展示序列，纯函数，每次从头算。
// 过滤顺序：可见性 -> 全文搜索 -> 标签交集，最后稳定排序。
func BuildFeed(posts []model.Post, viewer *model.User, opts FeedOptions) []model.Post {
	isAdmin := viewer != nil && viewer.IsAdmin
	query := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		// 被举报的帖子只有管理员可见
		if p.IsFlagged && !isAdmin {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if len(opts.Tags) > 0 && !hasAnyTag(p, opts.Tags) {
			continue
		}
		out = append(out, p)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var less func(a, b model.Post) bool
	switch opts.Sort {
	case SortRecent:
		less = func(a, b model.Post) bool { return a.Timestamp.Before(b.Timestamp) }
	case SortTrending:
		less = func(a, b model.Post) bool { return TrendingScore(a, now) < TrendingScore(b, now) }
	default:
		less = func(a, b model.Post) bool { return a.Upvotes < b.Upvotes }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if opts.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// FlaggedPosts 管理员审核视图：全部被举报的帖子，可按关键字过滤
func FlaggedPosts(posts []model.Post, search string) []model.Post {
	query := strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Post, 0)
	for _, p := range posts {
		if !p.IsFlagged {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TrendingScore 展示时实时计算：票数 / max(帖龄小时数, 1)
func TrendingScore(p model.Post, now time.Time) float64 {
	age := now.Sub(p.Timestamp).Hours()
	if age < 1 {
		age = 1
	}
	return float64(p.Upvotes) / age
}

// matchesQuery 标题、正文、作者名大小写不敏感子串匹配；匿名帖没有作者名可匹配
func matchesQuery(p model.Post, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Content), query) {
		return true
	}
	if p.UserName != nil && strings.Contains(strings.ToLower(*p.UserName), query) {
		return true
	}
	return false
}

func hasAnyTag(p model.Post, selected []string) bool {
	for _, t := range p.Tags {
		for _, s := range selected {
			if strings.EqualFold(t, s) {
				return true
			}
		}
	}
	return false
}
