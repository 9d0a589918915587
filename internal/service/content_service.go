package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"Connect_Hub/internal/model"
	"Connect_Hub/internal/pkg"

	"github.com/google/uuid"
)

var (
	ErrNotAuthorized   = errors.New("not authorized")
	ErrCommunityExists = errors.New("a community with this name already exists")
)

// PostStore 帖子集合整体读写
type PostStore interface {
	LoadAll(ctx context.Context) ([]model.Post, error)
	SaveAll(ctx context.Context, posts []model.Post) error
}

// CommunityStore 社区集合整体读写
type CommunityStore interface {
	LoadAll(ctx context.Context) ([]model.Community, error)
	SaveAll(ctx context.Context, communities []model.Community) error
}

// EventProducer 审核事件出口，nil 实现表示关闭
type EventProducer interface {
	SendModerationEvent(ctx context.Context, ev pkg.ModerationEvent) error
}

type CreatePostInput struct {
	Title       string
	Content     string
	Tags        []string
	IsAnonymous bool
}

// ContentService 持有内存中的帖子/社区集合，是唯一写者。
// 每次变更先写 redis 成功后才提交到内存，失败直接放弃本次变更，
// 内存与存储不会出现分叉。
type ContentService struct {
	mu          sync.Mutex
	posts       []model.Post
	communities []model.Community

	postRepo PostStore
	commRepo CommunityStore
	events   EventProducer
}

func NewContentService(ctx context.Context, postRepo PostStore, commRepo CommunityStore, events EventProducer) (*ContentService, error) {
	s := &ContentService{
		postRepo: postRepo,
		commRepo: commRepo,
		events:   events,
	}

	posts, err := postRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	// nil 表示键不存在（首次运行），空数组不会重新播种
	if posts == nil {
		posts = seedPosts()
		if err := postRepo.SaveAll(ctx, posts); err != nil {
			return nil, err
		}
	}
	s.posts = posts

	communities, err := commRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if communities == nil {
		communities = seedCommunities()
		if err := commRepo.SaveAll(ctx, communities); err != nil {
			return nil, err
		}
	}
	s.communities = communities

	return s, nil
}

// Posts 返回快照副本，调用方可以随意过滤排序
func (s *ContentService) Posts() []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *ContentService) Communities() []model.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Community, len(s.communities))
	copy(out, s.communities)
	return out
}

// CreatePost 新帖插在最前（存储层保持最新在前）。
// 标题/正文/标签的非空校验在 handler 边界完成。
func (s *ContentService) CreatePost(ctx context.Context, actor *model.User, in CreatePostInput) (*model.Post, error) {
	post := model.Post{
		ID:          "post_" + uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Tags:        in.Tags,
		Timestamp:   time.Now(),
		Upvotes:     0,
		UserID:      actor.ID,
		IsAnonymous: in.IsAnonymous,
		IsFlagged:   false,
	}
	// 不变式：匿名帖不携带作者名
	if !in.IsAnonymous {
		name := actor.Name
		post.UserName = &name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Post, 0, len(s.posts)+1)
	next = append(next, post)
	next = append(next, s.posts...)

	if err := s.postRepo.SaveAll(ctx, next); err != nil {
		return nil, err
	}
	s.posts = next
	return &post, nil
}

// UpvotePost 自反转开关：已点过则 -1 并清除标记，否则 +1 并打标记。
// 未知 id 静默忽略。
func (s *ContentService) UpvotePost(ctx context.Context, actor *model.User, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(postID)
	if i < 0 {
		return nil
	}

	next := make([]model.Post, len(s.posts))
	copy(next, s.posts)
	if next[i].UserUpvoted {
		next[i].Upvotes--
		next[i].UserUpvoted = false
	} else {
		next[i].Upvotes++
		next[i].UserUpvoted = true
	}

	if err := s.postRepo.SaveAll(ctx, next); err != nil {
		return err
	}
	s.posts = next
	return nil
}

// FlagPost 单向置位，幂等；成功后发审核事件。
// 事件在锁外发送，kafka 慢不拖住其他内容操作。
func (s *ContentService) FlagPost(ctx context.Context, actor *model.User, postID string) error {
	s.mu.Lock()

	i := s.indexOf(postID)
	if i < 0 || s.posts[i].IsFlagged {
		s.mu.Unlock()
		return nil
	}

	next := make([]model.Post, len(s.posts))
	copy(next, s.posts)
	next[i].IsFlagged = true

	if err := s.postRepo.SaveAll(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.posts = next
	s.mu.Unlock()

	s.emitEvent(ctx, "post.flagged", postID, actor.ID)
	return nil
}

// DeletePost 仅管理员可删，数据层自己校验而不是信任调用方
func (s *ContentService) DeletePost(ctx context.Context, actor *model.User, postID string) error {
	if actor == nil || !actor.IsAdmin {
		return ErrNotAuthorized
	}

	s.mu.Lock()

	i := s.indexOf(postID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	next := make([]model.Post, 0, len(s.posts)-1)
	next = append(next, s.posts[:i]...)
	next = append(next, s.posts[i+1:]...)

	if err := s.postRepo.SaveAll(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.posts = next
	s.mu.Unlock()

	s.emitEvent(ctx, "post.deleted", postID, actor.ID)
	return nil
}

// CreateCommunity 名称大小写不敏感去重，冲突返回 ErrCommunityExists
func (s *ContentService) CreateCommunity(ctx context.Context, actor *model.User, name, description string) (*model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.communities {
		if strings.EqualFold(c.Name, name) {
			return nil, ErrCommunityExists
		}
	}

	community := model.Community{
		ID:          "community_" + uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
		MemberCount: 1, // 创建者即首个成员
	}

	next := make([]model.Community, len(s.communities), len(s.communities)+1)
	copy(next, s.communities)
	next = append(next, community)

	if err := s.commRepo.SaveAll(ctx, next); err != nil {
		return nil, err
	}
	s.communities = next
	return &community, nil
}

// indexOf 调用方需持锁
func (s *ContentService) indexOf(postID string) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// emitEvent 尽力而为，kafka 不可用只记日志
func (s *ContentService) emitEvent(ctx context.Context, eventType, postID, actorID string) {
	if s.events == nil {
		return
	}
	err := s.events.SendModerationEvent(ctx, pkg.ModerationEvent{
		EventType:  eventType,
		PostID:     postID,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("moderation event %s for %s not sent: %v", eventType, postID, err)
	}
}
