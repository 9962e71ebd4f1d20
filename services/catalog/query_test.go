package catalog

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit int
		want        models.PageRequest
	}{
		{0, 0, models.PageRequest{Page: 1, Limit: DefaultPageLimit}},
		{-3, 5, models.PageRequest{Page: 1, Limit: 5}},
		{2, 1000, models.PageRequest{Page: 2, Limit: MaxPageLimit}},
		{4, 25, models.PageRequest{Page: 4, Limit: 25}},
		{1_000_000_000_000_000_000, 10, models.PageRequest{Page: MaxPage, Limit: 10}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePage(tt.page, tt.limit), "page=%d limit=%d", tt.page, tt.limit)
	}
}

func TestHugePageSkipStaysPositive(t *testing.T) {
	page := NormalizePage(math.MaxInt, MaxPageLimit)
	assert.Equal(t, int64(MaxPage-1)*MaxPageLimit, page.Skip())
	assert.Positive(t, page.Skip())
}

func TestListPublicHugePageIsEmpty(t *testing.T) {
	cat, _, _ := newCatalog()
	ctx := context.Background()
	_, err := cat.CreateService(ctx, serviceInput("termites", false))
	require.NoError(t, err)

	res, err := cat.ListPublic(ctx, models.ServiceFilter{}, models.PageRequest{Page: 1_000_000_000_000_000_000, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Services)
	assert.Equal(t, MaxPage, res.Pagination.CurrentPage)
	assert.Equal(t, int64(1), res.Pagination.TotalServices)
	assert.False(t, res.Pagination.HasNextPage)
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(models.PageRequest{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)

	p = BuildPagination(models.PageRequest{Page: 2, Limit: 10}, 20)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func seedServices(t *testing.T, cat *DefaultServiceCatalog, n int) []*models.Service {
	t.Helper()
	out := make([]*models.Service, 0, n)
	for i := 0; i < n; i++ {
		svc, err := cat.CreateService(context.Background(), serviceInput(fmt.Sprintf("svc-%02d", i), false))
		require.NoError(t, err)
		out = append(out, svc)
	}
	return out
}

func TestListPublicPagination(t *testing.T) {
	cat, _, _ := newCatalog()
	ctx := context.Background()
	seedServices(t, cat, 25)

	first, err := cat.ListPublic(ctx, models.ServiceFilter{}, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, first.Services, 10)
	assert.Equal(t, models.Pagination{CurrentPage: 1, TotalPages: 3, TotalServices: 25, HasNextPage: true, HasPrevPage: false}, first.Pagination)

	last, err := cat.ListPublic(ctx, models.ServiceFilter{}, models.PageRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Services, 5)
	assert.False(t, last.Pagination.HasNextPage)
	assert.True(t, last.Pagination.HasPrevPage)

	beyond, err := cat.ListPublic(ctx, models.ServiceFilter{}, models.PageRequest{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Services)
	assert.NotNil(t, beyond.Services)
	assert.Equal(t, int64(25), beyond.Pagination.TotalServices)
}

func TestListPublicFeaturedFirst(t *testing.T) {
	cat, repo, _ := newCatalog()
	ctx := context.Background()
	base := time.Now()

	add := func(id string, featured bool, age time.Duration) {
		require.NoError(t, repo.Create(ctx, &models.Service{
			ID: id, Slug: id, Featured: featured, Status: models.ServiceStatusActive,
			ServiceType: "Termite Control", CreatedAt: base.Add(-age),
		}))
	}
	add("new-plain", false, 0)
	add("old-featured", true, 48*time.Hour)
	add("mid-plain", false, time.Hour)
	add("new-featured", true, time.Minute)

	page, err := cat.ListPublic(ctx, models.ServiceFilter{}, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	var slugs []string
	for _, s := range page.Services {
		slugs = append(slugs, s.Slug)
	}
	assert.Equal(t, []string{"new-featured", "old-featured", "new-plain", "mid-plain"}, slugs)
}

func TestListPublicHidesInactiveAndFilters(t *testing.T) {
	cat, _, _ := newCatalog()
	ctx := context.Background()

	_, err := cat.CreateService(ctx, serviceInput("visible", true))
	require.NoError(t, err)

	hidden := serviceInput("hidden", false)
	hidden.Status = models.ServiceStatusInactive
	_, err = cat.CreateService(ctx, hidden)
	require.NoError(t, err)

	rodents := serviceInput("rodents", false)
	rodents.ServiceType = "Rodent Control"
	_, err = cat.CreateService(ctx, rodents)
	require.NoError(t, err)

	all, err := cat.ListPublic(ctx, models.ServiceFilter{}, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.TotalServices)

	byType, err := cat.ListPublic(ctx, models.ServiceFilter{ServiceType: " Rodent Control "}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, byType.Services, 1)
	assert.Equal(t, "rodents", byType.Services[0].Slug)

	featured, err := cat.ListPublic(ctx, models.ServiceFilter{Featured: boolPtr(true)}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, featured.Services, 1)
	assert.Equal(t, "visible", featured.Services[0].Slug)

	_, err = cat.GetBySlug(ctx, "hidden")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestGetBySlugCountsViews(t *testing.T) {
	cat, repo, _ := newCatalog()
	ctx := context.Background()

	svc, err := cat.CreateService(ctx, serviceInput("mosquito-fogging", false))
	require.NoError(t, err)

	got, err := cat.GetBySlug(ctx, " Mosquito-Fogging ")
	require.NoError(t, err)
	assert.Equal(t, svc.ID, got.ID)

	assert.Eventually(t, func() bool {
		stored, _ := repo.GetByID(ctx, svc.ID)
		return stored.Views == 1
	}, time.Second, 10*time.Millisecond)

	const readers = 20
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cat.GetBySlug(ctx, "mosquito-fogging")
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		stored, _ := repo.GetByID(ctx, svc.ID)
		return stored.Views == readers+1
	}, time.Second, 10*time.Millisecond)
}

func TestGetBySlugMissing(t *testing.T) {
	cat, _, _ := newCatalog()

	_, err := cat.GetBySlug(context.Background(), "")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = cat.GetBySlug(context.Background(), "nope")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestListAllServicesIncludesInactive(t *testing.T) {
	cat, _, _ := newCatalog()
	ctx := context.Background()

	seedServices(t, cat, 3)
	inactive := serviceInput("inactive", false)
	inactive.Status = models.ServiceStatusInactive
	_, err := cat.CreateService(ctx, inactive)
	require.NoError(t, err)
	deleted, err := cat.CreateService(ctx, serviceInput("deleted", false))
	require.NoError(t, err)
	require.NoError(t, cat.SoftDeleteService(ctx, deleted.ID))

	page, err := cat.ListAllServices(ctx, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Services, 4)
	assert.Equal(t, int64(4), page.Pagination.TotalServices)
}
