package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, newsID uint64, req *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	ReplyComment(ctx context.Context, userID, parentID uint64, req *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error)
	ListComments(ctx context.Context, newsID, viewerID uint64) ([]*dto.CommentDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	newsRepo    repository.NewsRepo
	userRepo    repository.UserRepo
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	newsRepo repository.NewsRepo,
	userRepo repository.UserRepo,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		newsRepo:    newsRepo,
		userRepo:    userRepo,
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, newsID uint64, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	return s.create(ctx, &model.Comment{NewsID: newsID, UserID: userID}, req)
}

// ReplyComment 回复归属父评论所在的内容
func (s *commentServiceImpl) ReplyComment(ctx context.Context, userID, parentID uint64, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	return s.create(ctx, &model.Comment{UserID: userID, ParentID: &parentID}, req)
}

func (s *commentServiceImpl) create(ctx context.Context, comment *model.Comment, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	content := util.SanitizeComment(req.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	comment.Content = content
	comment.Status = model.CommentStatusVisible

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, translateRepoErr(err)
	}

	result := toCommentDTO(comment)
	author, err := s.userRepo.GetUserByID(ctx, comment.UserID)
	if err != nil {
		log.WarnContext(ctx, "load comment author failed", "user_id", comment.UserID, "err", err)
	} else {
		result.Author = toUserBrief(author)
	}
	return result, nil
}

func (s *commentServiceImpl) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error) {
	return toggleOnce(ctx, "comment_like", func() (*repository.ToggleOutcome, error) {
		return s.commentRepo.ToggleCommentLike(ctx, userID, commentID)
	})
}

// ListComments 返回评论树，父评论已不存在的回复提升为一级
func (s *commentServiceImpl) ListComments(ctx context.Context, newsID, viewerID uint64) ([]*dto.CommentDTO, error) {
	if _, err := s.newsRepo.GetNewsByID(ctx, newsID); err != nil {
		return nil, translateRepoErr(err)
	}

	comments, err := s.commentRepo.ListCommentsByNews(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []*dto.CommentDTO{}, nil
	}

	ids := make([]uint64, len(comments))
	authorSet := make(map[uint64]struct{})
	for i, c := range comments {
		ids[i] = c.ID
		authorSet[c.UserID] = struct{}{}
	}
	authorIDs := make([]uint64, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := s.userRepo.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := make(map[uint64]*model.User, len(authors))
	for _, a := range authors {
		authorMap[a.ID] = a
	}

	likeCounts, err := s.commentRepo.CountCommentLikes(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.commentRepo.GetLikedCommentIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint64]*dto.CommentDTO, len(comments))
	for _, c := range comments {
		node := toCommentDTO(c)
		node.LikeCount = likeCounts[c.ID]
		node.IsLiked = liked[c.ID]
		if a, ok := authorMap[c.UserID]; ok {
			node.Author = toUserBrief(a)
		}
		nodes[c.ID] = node
	}

	roots := make([]*dto.CommentDTO, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	result := &dto.CommentDTO{Replies: []*dto.CommentDTO{}}
	_ = copier.Copy(result, c)
	return result
}

func toUserBrief(u *model.User) *dto.UserBriefDTO {
	if u == nil {
		return nil
	}
	brief := &dto.UserBriefDTO{}
	_ = copier.Copy(brief, u)
	return brief
}
