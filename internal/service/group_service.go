package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studynotes-be/internal/access"
	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/internal/repository/unitofwork"
)

type IGroupService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) (*dto.GroupListResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.GroupDetailResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	AddMember(ctx context.Context, actorId, groupId uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, actorId, groupId, targetUserId uuid.UUID) error

	ShareNote(ctx context.Context, userId, groupId uuid.UUID, req *dto.ShareNoteRequest) error
	UnshareNote(ctx context.Context, userId, groupId, noteId uuid.UUID) error
}

type groupService struct {
	uowFactory       unitofwork.RepositoryFactory
	noteService      INoteService
	publisherService IPublisherService
	accessVerifier   *access.Verifier
}

func NewGroupService(
	uowFactory unitofwork.RepositoryFactory,
	noteService INoteService,
	publisherService IPublisherService,
) IGroupService {
	return &groupService{
		uowFactory:       uowFactory,
		noteService:      noteService,
		publisherService: publisherService,
		accessVerifier:   access.NewVerifier(),
	}
}

// Create inserts the group and enrolls the owner as admin in the same
// transaction, so a group can never exist without its owner's membership.
func (s *groupService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	group := &entity.Group{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		OwnerId:     userId,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	ownerMembership := &entity.GroupMember{
		Id:        uuid.New(),
		GroupId:   group.Id,
		UserId:    userId,
		Role:      entity.GroupRoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.GroupRepository().Create(ctx, group); err != nil {
		return nil, err
	}
	if err := uow.GroupRepository().AddMember(ctx, ownerMembership); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisherService.PublishAudit(ctx, "GROUP_CREATED", map[string]any{
		"group_id": group.Id,
		"owner_id": userId,
	})

	return groupResponse(group), nil
}

func (s *groupService) GetAll(ctx context.Context, userId uuid.UUID) (*dto.GroupListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	owned, err := uow.GroupRepository().FindAll(ctx,
		specification.OwnedByOwner{OwnerID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	enrolled, err := uow.GroupRepository().FindAllByMember(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := &dto.GroupListResponse{
		Owned:  []dto.GroupResponse{},
		Member: []dto.GroupResponse{},
	}
	for _, group := range owned {
		res.Owned = append(res.Owned, *groupResponse(group))
	}
	for _, group := range enrolled {
		if group.OwnerId != userId {
			res.Member = append(res.Member, *groupResponse(group))
		}
	}
	return res, nil
}

// visibleGroup resolves a group on behalf of an actor. Groups the actor
// has no membership in (and does not own) resolve to NotFound, so group
// ids stay unprobeable; callers layer Forbidden on top only for members
// lacking the required role.
func (s *groupService) visibleGroup(ctx context.Context, uow unitofwork.UnitOfWork, groupId, actorId uuid.UUID) (*entity.Group, *entity.GroupMember, error) {
	group, err := uow.GroupRepository().FindOne(ctx, specification.ByID{ID: groupId})
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, apperror.NotFound("group")
	}

	membership, err := uow.GroupRepository().FindMembership(ctx, groupId, actorId)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil && group.OwnerId != actorId {
		return nil, nil, apperror.NotFound("group")
	}
	return group, membership, nil
}

func (s *groupService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.GroupDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, _, err := s.visibleGroup(ctx, uow, id, userId)
	if err != nil {
		return nil, err
	}

	members, err := uow.GroupRepository().FindMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	roster, err := s.buildRoster(ctx, uow, members)
	if err != nil {
		return nil, err
	}

	sharedIds, err := uow.GroupRepository().FindSharedNoteIds(ctx, id)
	if err != nil {
		return nil, err
	}
	sharedNotes, err := s.noteService.GetByIds(ctx, sharedIds)
	if err != nil {
		return nil, err
	}
	noteValues := make([]dto.NoteResponse, 0, len(sharedNotes))
	for _, n := range sharedNotes {
		noteValues = append(noteValues, *n)
	}

	return &dto.GroupDetailResponse{
		GroupResponse: *groupResponse(group),
		Members:       roster,
		SharedNotes:   noteValues,
	}, nil
}

func (s *groupService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, _, err := s.visibleGroup(ctx, uow, req.Id, userId)
	if err != nil {
		return nil, err
	}
	if !s.accessVerifier.CanManageGroup(userId, group) {
		return nil, apperror.Forbidden("only the group owner can update the group")
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.IsPrivate != nil {
		group.IsPrivate = *req.IsPrivate
	}
	group.UpdatedAt = time.Now()

	if err := uow.GroupRepository().Update(ctx, group); err != nil {
		return nil, err
	}
	return groupResponse(group), nil
}

// Delete removes the group; memberships and note shares cascade, the
// shared notes themselves are untouched.
func (s *groupService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, _, err := s.visibleGroup(ctx, uow, id, userId)
	if err != nil {
		return err
	}
	if !s.accessVerifier.CanManageGroup(userId, group) {
		return apperror.Forbidden("only the group owner can delete the group")
	}

	return uow.GroupRepository().Delete(ctx, id)
}

func (s *groupService) AddMember(ctx context.Context, actorId, groupId uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, actorMembership, err := s.visibleGroup(ctx, uow, groupId, actorId)
	if err != nil {
		return nil, err
	}
	if actorMembership == nil || actorMembership.Role != entity.GroupRoleAdmin {
		return nil, apperror.Forbidden("only group admins can add members")
	}

	target, err := uow.UserRepository().FindOne(ctx,
		specification.ByID{ID: req.UserId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NotFound("user")
	}

	member := &entity.GroupMember{
		Id:        uuid.New(),
		GroupId:   groupId,
		UserId:    target.Id,
		Role:      entity.GroupRoleMember,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.GroupRepository().AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.publisherService.PublishAudit(ctx, "MEMBER_ADDED", map[string]any{
		"group_id": groupId,
		"user_id":  target.Id,
		"added_by": actorId,
	})

	return &dto.MemberResponse{
		UserId:   target.Id,
		Name:     target.Name,
		Email:    target.Email,
		Role:     string(member.Role),
		JoinedAt: member.CreatedAt,
	}, nil
}

func (s *groupService) RemoveMember(ctx context.Context, actorId, groupId, targetUserId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, _, err := s.visibleGroup(ctx, uow, groupId, actorId)
	if err != nil {
		return err
	}

	if !s.accessVerifier.CanRemoveMember(actorId, targetUserId, group) {
		return apperror.Forbidden("not allowed to remove this member")
	}

	membership, err := uow.GroupRepository().FindMembership(ctx, groupId, targetUserId)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NotFound("membership")
	}

	return uow.GroupRepository().RemoveMember(ctx, groupId, targetUserId)
}

// ShareNote publishes one of the caller's notes into a group the caller
// belongs to. Only note owners can share, so membership alone never grants
// distribution rights over someone else's notes.
func (s *groupService) ShareNote(ctx context.Context, userId, groupId uuid.UUID, req *dto.ShareNoteRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, _, err := s.visibleGroup(ctx, uow, groupId, userId)
	if err != nil {
		return err
	}

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.NoteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound("note")
	}

	share := &entity.GroupNote{
		Id:        uuid.New(),
		GroupId:   groupId,
		NoteId:    note.Id,
		CreatedAt: time.Now(),
	}
	if err := uow.GroupRepository().ShareNote(ctx, share); err != nil {
		return err
	}

	s.publisherService.PublishAudit(ctx, "NOTE_SHARED", map[string]any{
		"group_id": groupId,
		"note_id":  note.Id,
		"user_id":  userId,
	})

	return nil
}

func (s *groupService) UnshareNote(ctx context.Context, userId, groupId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, err := uow.GroupRepository().FindOne(ctx, specification.ByID{ID: groupId})
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NotFound("group")
	}

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound("note")
	}

	// The note's owner can always withdraw it, even after leaving the
	// group; the group owner can also curate their own group.
	if note.UserId != userId && !s.accessVerifier.CanManageGroup(userId, group) {
		membership, err := uow.GroupRepository().FindMembership(ctx, groupId, userId)
		if err != nil {
			return err
		}
		if membership == nil {
			return apperror.NotFound("group")
		}
		return apperror.Forbidden("not allowed to unshare this note")
	}

	return uow.GroupRepository().UnshareNote(ctx, groupId, noteId)
}

func (s *groupService) buildRoster(ctx context.Context, uow unitofwork.UnitOfWork, members []*entity.GroupMember) ([]dto.MemberResponse, error) {
	if len(members) == 0 {
		return []dto.MemberResponse{}, nil
	}

	userIds := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		userIds = append(userIds, m.UserId)
	}
	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIds})
	if err != nil {
		return nil, err
	}
	usersById := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		usersById[u.Id] = u
	}

	roster := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.MemberResponse{
			UserId:   m.UserId,
			Role:     string(m.Role),
			JoinedAt: m.CreatedAt,
		}
		if u, ok := usersById[m.UserId]; ok {
			item.Name = u.Name
			item.Email = u.Email
		}
		roster = append(roster, item)
	}
	return roster, nil
}

func groupResponse(group *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		Id:          group.Id,
		Name:        group.Name,
		Description: group.Description,
		IsPrivate:   group.IsPrivate,
		OwnerId:     group.OwnerId,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}
