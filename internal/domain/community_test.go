package domain

import (
	"testing"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/testutil"
	"github.com/shelfmark/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newTestCommunityDomain() *communityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewMemberRepository(),
		repository.NewUserRepository(),
		nil,
	)
}

func Test_communityDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestCommunityDomain()

	resp, err := domain.Create(ctx, &model.CreateCommunityRequest{
		Handle:       "slow_readers",
		DisplayName:  "Slow Readers",
		Introduction: "One page at a time.",
	})
	require.NoError(t, err)
	require.Equal(t, "slow_readers", resp.Handle)

	var result entity.Community
	err = xcontext.DB(ctx).Take(&result, "handle", "slow_readers").Error
	require.NoError(t, err)
	require.Equal(t, "Slow Readers", result.DisplayName)
	require.Equal(t, testutil.User1.ID, result.CreatedBy)

	// The creator follows automatically.
	require.Equal(t, 1, result.Followers)
	_, err = repository.NewMemberRepository().Get(ctx, testutil.User1.ID, result.ID)
	require.NoError(t, err)
}

func Test_communityDomain_GetMyCommunities(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestCommunityDomain()

	resp, err := domain.GetMyCommunities(ctx, &model.GetMyCommunitiesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Communities, 1)
	require.Equal(t, testutil.Community1.Handle, resp.Communities[0].Handle)

	otherCtx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(otherCtx)
	resp, err = domain.GetMyCommunities(otherCtx, &model.GetMyCommunitiesRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Communities)
}

func Test_communityDomain_Create_invalidHandle(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestCommunityDomain()

	for _, handle := range []string{"", "ab", "Has Spaces", "UPPER", "way_too_long_handle_exceeding_the_limit"} {
		_, err := domain.Create(ctx, &model.CreateCommunityRequest{
			Handle:      handle,
			DisplayName: "X",
		})
		require.Error(t, err, "handle %q", handle)
	}

	_, err := domain.Create(ctx, &model.CreateCommunityRequest{
		Handle:      testutil.Community1.Handle,
		DisplayName: "Duplicated",
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_communityDomain_FollowUnfollow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	domain := newTestCommunityDomain()

	_, err := domain.Follow(ctx, &model.FollowCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)

	community, err := repository.NewCommunityRepository().GetByID(ctx, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, 2, community.Followers)

	_, err = domain.Follow(ctx, &model.FollowCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)

	_, err = domain.Unfollow(ctx, &model.UnfollowCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)

	community, err = repository.NewCommunityRepository().GetByID(ctx, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, community.Followers)

	// Unfollowing twice fails and must not touch the counter again.
	_, err = domain.Unfollow(ctx, &model.UnfollowCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	community, err = repository.NewCommunityRepository().GetByID(ctx, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, community.Followers)
}

func Test_communityDomain_Unfollow_notFollowing(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	domain := newTestCommunityDomain()

	_, err := domain.Unfollow(ctx, &model.UnfollowCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	community, err := repository.NewCommunityRepository().GetByID(ctx, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, community.Followers)
}

func Test_communityDomain_GetMembers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	domain := newTestCommunityDomain()

	_, err := domain.Follow(ctx, &model.FollowCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)

	resp, err := domain.GetMembers(ctx, &model.GetMembersRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)

	names := []string{resp.Members[0].User.Name, resp.Members[1].User.Name}
	require.Contains(t, names, testutil.User1.Name)
	require.Contains(t, names, testutil.User2.Name)
}
